package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	id   int
	kind toastKind
	text string
}

// toasts are transient, non-blocking notifications. Each one expires on its
// own timer.
type toasts struct {
	items  []toast
	nextID int
	ttl    time.Duration
}

type toastExpiredMsg struct{ id int }

func (t *toasts) push(kind toastKind, text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	t.nextID++
	id := t.nextID
	t.items = append(t.items, toast{id: id, kind: kind, text: text})
	ttl := t.ttl
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (t *toasts) success(text string) tea.Cmd { return t.push(toastSuccess, text) }
func (t *toasts) failure(text string) tea.Cmd { return t.push(toastError, text) }

func (t *toasts) expire(id int) {
	for i, it := range t.items {
		if it.id == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t toasts) view() string {
	if len(t.items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(t.items))
	for _, it := range t.items {
		switch it.kind {
		case toastError:
			rendered = append(rendered, toastErrorStyle.Render("✗ "+it.text))
		default:
			rendered = append(rendered, toastSuccessStyle.Render("✓ "+it.text))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
