package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	Key    string
	Label  string
	Secret bool
}

// form is a small stack of text inputs; tab cycles focus, enter submits.
type form struct {
	title  string
	fields []formField
	inputs []textinput.Model
	focus  int
	busy   bool
}

func newForm(title string, fields []formField) form {
	inputs := make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		inp := textinput.New()
		inp.Prompt = f.Label + ": "
		inp.CharLimit = 128
		if f.Secret {
			inp.EchoMode = textinput.EchoPassword
			inp.EchoCharacter = '•'
		}
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return form{title: title, fields: fields, inputs: inputs}
}

func newLoginForm() form {
	return newForm("Login", []formField{
		{Key: "email", Label: "Email"},
		{Key: "password", Label: "Password", Secret: true},
	})
}

func newSignupForm() form {
	return newForm("Join Now", []formField{
		{Key: "firstName", Label: "First name"},
		{Key: "lastName", Label: "Last name"},
		{Key: "email", Label: "Email"},
		{Key: "password", Label: "Password", Secret: true},
	})
}

// update returns submit=true when the user pressed enter on a complete form.
func (f *form) update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
		return f.inputs[f.focus].Focus(), false
	case "enter":
		if f.busy {
			return nil, false
		}
		if missing := f.firstEmpty(); missing >= 0 {
			f.inputs[f.focus].Blur()
			f.focus = missing
			return f.inputs[f.focus].Focus(), false
		}
		return nil, true
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f form) firstEmpty() int {
	for i, in := range f.inputs {
		if strings.TrimSpace(in.Value()) == "" {
			return i
		}
	}
	return -1
}

func (f form) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fl := range f.fields {
		v := f.inputs[i].Value()
		if !fl.Secret {
			v = strings.TrimSpace(v)
		}
		out[fl.Key] = v
	}
	return out
}

func (f form) view() string {
	lines := []string{titleStyle.Render(f.title), ""}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "")
	if f.busy {
		lines = append(lines, mutedStyle.Render("working..."))
	} else {
		lines = append(lines, mutedStyle.Render("enter: submit  tab: next field  esc: back"))
	}
	return strings.Join(lines, "\n")
}
