package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Menu    key.Binding
	Login   key.Binding
	Join    key.Binding
	Logout  key.Binding
	Up      key.Binding
	Down    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Select  key.Binding
	Enroll  key.Binding
	Explore key.Binding
	Teach   key.Binding
	Videos  key.Binding
	Reload  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Menu:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Login:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		Join:    key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "join")),
		Logout:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Prev:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Next:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Enroll:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "enroll")),
		Explore: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "explore")),
		Teach:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "instructor")),
		Videos:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "videos")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// homeKeys is the help line for the landing page. Login/Join or Logout is
// chosen from the same affordance list the header uses.
func (k keyMap) homeKeys(affs []affordance) []key.Binding {
	out := []key.Binding{k.Menu}
	for _, a := range affs {
		switch a {
		case affordLogin:
			out = append(out, k.Login)
		case affordJoin:
			out = append(out, k.Join)
		case affordLogout:
			out = append(out, k.Logout)
		}
	}
	return append(out, k.Prev, k.Next, k.Enroll, k.Explore, k.Teach, k.Videos, k.Reload, k.Quit)
}

func (k keyMap) sidebarKeys() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Menu, k.Back}
}
