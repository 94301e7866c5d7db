package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/coursify/coursify/internal/catalog"
)

// carousel pages through the catalog one card at a time.
type carousel struct {
	index int
}

type autoplayMsg struct{}

// cardsPerPage follows the web breakpoints, scaled to terminal columns.
func cardsPerPage(width int) int {
	switch {
	case width >= 120:
		return 4
	case width >= 90:
		return 3
	case width >= 60:
		return 2
	default:
		return 1
	}
}

func (c *carousel) reset() { c.index = 0 }

// lastIndex is the furthest first-visible card; the final page is full.
func lastIndex(count, per int) int {
	if count <= per {
		return 0
	}
	return count - per
}

func (c *carousel) next(count, per int) {
	if c.index >= lastIndex(count, per) {
		c.index = 0
		return
	}
	c.index++
}

func (c *carousel) prev() {
	if c.index > 0 {
		c.index--
	}
}

// clamp keeps the index valid after a resize or a reload.
func (c *carousel) clamp(count, per int) {
	if c.index > lastIndex(count, per) {
		c.index = lastIndex(count, per)
	}
}

func (c carousel) visible(courses []catalog.Course, per int) []catalog.Course {
	if len(courses) == 0 {
		return nil
	}
	end := min(c.index+per, len(courses))
	return courses[c.index:end]
}

func autoplay(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg { return autoplayMsg{} })
}

func (c carousel) view(courses []catalog.Course, width int) string {
	per := cardsPerPage(width)
	cards := c.visible(courses, per)
	cardWidth := max(16, width/per-2)
	rendered := make([]string, 0, len(cards))
	for i, course := range cards {
		rendered = append(rendered, renderCard(course, i+1, cardWidth))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	pages := lastIndex(len(courses), per) + 1
	dots := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		if i == c.index {
			dots = append(dots, dotOn)
		} else {
			dots = append(dots, dotOff)
		}
	}
	dotsLine := lipgloss.PlaceHorizontal(max(width, 1), lipgloss.Center, strings.Join(dots, " "))
	return row + "\n" + dotsLine
}

func renderCard(c catalog.Course, slot, width int) string {
	inner := width - 4
	title := lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(c.Title, inner, "…"))
	img := mutedStyle.Render(ansi.Truncate(c.Image.URL, inner, "…"))
	enroll := enrollStyle.Render("[" + string(rune('0'+slot)) + "] Enroll Now")
	link := mutedStyle.Render(ansi.Truncate(c.BuyPath(), inner, "…"))
	body := lipgloss.JoinVertical(lipgloss.Center,
		img,
		"",
		title,
		enroll,
		link,
	)
	return cardStyle.Width(width - 2).Align(lipgloss.Center).Render(body)
}
