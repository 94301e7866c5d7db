package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/coursify/coursify/internal/catalog"
)

const brand = "Coursify"

func (a *App) View() string {
	var body string
	switch a.route {
	case routeHome:
		body = a.renderHome()
	case routeLogin:
		body = a.login.view()
	case routeSignup:
		body = a.signup.view()
	case routeCourses:
		body = a.renderCourses()
	default:
		body = a.renderHandoff()
	}
	if t := a.toasts.view(); t != "" {
		body += "\n\n" + lipgloss.PlaceHorizontal(max(a.width, 1), lipgloss.Right, t)
	}
	return body
}

func (a *App) renderHome() string {
	header := a.renderHeader()
	helpKeys := a.keys.homeKeys(affordances(a.sess))
	if a.sidebar.open {
		helpKeys = a.keys.sidebarKeys()
	}
	parts := []string{header, "", a.renderHero()}
	if carouselVisible(a.cat) {
		parts = append(parts, "", a.carousel.view(a.cat.Courses, a.width))
	}
	parts = append(parts,
		"",
		ruleStyle.Render(strings.Repeat("─", max(a.width, 1))),
		a.renderFooter(),
		"",
		a.help.ShortHelpView(helpKeys),
	)
	page := strings.Join(parts, "\n")
	if a.sidebar.open {
		page = overlayTopRight(page, a.renderSidebar(), lipgloss.Height(header), a.width, 2)
	}
	return page
}

// renderHeader shows the brand, the session affordances and the menu icon.
func (a *App) renderHeader() string {
	logo := brandStyle.Render("◉ " + brand)
	buttons := make([]string, 0, 3)
	for _, aff := range affordances(a.sess) {
		buttons = append(buttons, renderAffordance(aff), " ")
	}
	icon := "☰"
	if a.sidebar.open {
		icon = "✕"
	}
	buttons = append(buttons, lipgloss.NewStyle().Padding(1, 1).Render(icon))
	right := lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
	gap := max(1, a.width-lipgloss.Width(logo)-lipgloss.Width(right))
	return lipgloss.JoinHorizontal(lipgloss.Center, logo, strings.Repeat(" ", gap), right)
}

func renderAffordance(aff affordance) string {
	if aff == affordJoin {
		return filledButton.Render(string(aff))
	}
	return outlineButton.Render(string(aff))
}

// renderSidebar mirrors the header affordances in the collapsible menu.
func (a *App) renderSidebar() string {
	affs := affordances(a.sess)
	lines := make([]string, 0, len(affs))
	for i, aff := range affs {
		label := " " + string(aff) + " "
		if i == a.sidebar.cursor {
			label = sidebarCursorStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderHero() string {
	w := max(a.width, 1)
	title := lipgloss.PlaceHorizontal(w, lipgloss.Center, brandStyle.Render(strings.ToUpper(brand)))
	tagline := lipgloss.PlaceHorizontal(w, lipgloss.Center, mutedStyle.Render("Sharpen your skills with courses crafted by experts"))
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		heroActionStyles[routeCourses].Render("[e] Explore Courses"), "  ",
		heroActionStyles[routeAdminSignup].Render("[i] Become Instructor"), "  ",
		heroActionStyles[routeCourseVideos].Render("[v] Course Videos"),
	)
	return strings.Join([]string{title, tagline, "", lipgloss.PlaceHorizontal(w, lipgloss.Center, actions)}, "\n")
}

func (a *App) renderFooter() string {
	col := max(20, a.width/3-2)
	about := strings.Join([]string{
		brandStyle.Render("◉ " + brand),
		"Follow us",
		"facebook · instagram · twitter",
	}, "\n")
	connect := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render("Connects"),
		"github - shivam916582",
		"linkedin - shivam-singh-4131b5251",
		"instagram - shi_vam_2_3",
	}, "\n")
	policies := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render("Policies © 2024"),
		"Terms & Conditions",
		"Privacy Policy",
		"Refund & Cancellation",
	}, "\n")
	cell := lipgloss.NewStyle().Width(col).MarginRight(2)
	return footerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(about), cell.Render(connect), cell.Render(policies)))
}

func (a *App) renderCourses() string {
	results := catalog.Search(a.cat.Courses, a.search.Value())
	lines := []string{titleStyle.Render("Courses"), a.search.View(), ""}
	switch {
	case !a.cat.Loaded:
		lines = append(lines, mutedStyle.Render("Loading courses..."))
	case a.cat.LoadError:
		lines = append(lines, mutedStyle.Render("Courses could not be loaded. esc then r to retry."))
	case len(a.cat.Courses) == 0:
		lines = append(lines, mutedStyle.Render("No courses to show."))
	case len(results) == 0:
		lines = append(lines, mutedStyle.Render("No course matches that search."))
	}
	for i, c := range results {
		marker := " "
		if i == a.coursesCursor {
			marker = "▶"
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", marker,
			ansi.Truncate(c.Title, max(10, a.width-30), "…"), mutedStyle.Render(c.BuyPath())))
	}
	lines = append(lines, "", mutedStyle.Render("type to filter  ↑/↓ move  enter: open  esc: back"))
	return strings.Join(lines, "\n")
}

// renderHandoff covers routes whose pages live in the web app.
func (a *App) renderHandoff() string {
	var title, detail string
	if id, ok := courseIDFromRoute(a.route); ok {
		title = "Enroll"
		detail = "Course " + id
		if c, found := a.courseByID(id); found {
			detail = lipgloss.NewStyle().Bold(true).Render(c.Title)
		}
		if a.offered(affordLogin) {
			detail += "\n" + mutedStyle.Render("Log in to buy this course: press l")
		}
	} else {
		switch a.route {
		case routeAdminSignup:
			title = "Become Instructor"
		case routeCourseVideos:
			title = "Course Videos"
		default:
			title = a.route
		}
	}
	lines := []string{titleStyle.Render(title)}
	if detail != "" {
		lines = append(lines, detail)
	}
	lines = append(lines,
		"",
		"Continue in your browser: "+webURL(a.opts.WebURL, a.route),
		"",
		mutedStyle.Render("esc: back  q: quit"),
	)
	return strings.Join(lines, "\n")
}

func (a *App) courseByID(id string) (catalog.Course, bool) {
	for _, c := range a.cat.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return catalog.Course{}, false
}
