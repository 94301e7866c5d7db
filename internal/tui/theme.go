package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Palette: night gradient of the web page with the orange brand accent
// ---------------------------------------------------------------------------

const (
	colorOrange lipgloss.Color = "#f97316"
	colorGreen  lipgloss.Color = "#22c55e"
	colorBlue   lipgloss.Color = "#2563eb"
	colorRed    lipgloss.Color = "#ef4444"
	colorWhite  lipgloss.Color = "#ffffff"
	colorGray4  lipgloss.Color = "#9ca3af"
	colorGray6  lipgloss.Color = "#4b5563"
	colorGray9  lipgloss.Color = "#111827"
	colorNavy   lipgloss.Color = "#172554"
)

const (
	colorBrand   = colorOrange
	colorMuted   = colorGray4
	colorBorder  = colorGray6
	colorSuccess = colorGreen
	colorError   = colorRed
)

var (
	brandStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true).Underline(true)

	outlineButton = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorWhite).
			Padding(0, 1)
	filledButton = lipgloss.NewStyle().
			Background(colorBrand).
			Foreground(colorWhite).
			Padding(0, 1)

	heroActionStyles = map[string]lipgloss.Style{
		routeCourses:      lipgloss.NewStyle().Background(colorGreen).Foreground(colorWhite).Bold(true).Padding(0, 2),
		routeAdminSignup:  lipgloss.NewStyle().Background(colorBlue).Foreground(colorWhite).Bold(true).Padding(0, 2),
		routeCourseVideos: lipgloss.NewStyle().Background(colorWhite).Foreground(colorGray9).Bold(true).Padding(0, 2),
	}

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Background(colorGray9).
			Padding(0, 1)
	sidebarCursorStyle = lipgloss.NewStyle().Background(colorWhite).Foreground(colorGray9)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	enrollStyle = lipgloss.NewStyle().Background(colorBrand).Foreground(colorWhite).Padding(0, 1)
	dotOn       = lipgloss.NewStyle().Foreground(colorWhite).Render("●")
	dotOff      = lipgloss.NewStyle().Foreground(colorBorder).Render("○")

	toastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSuccess).
				Padding(0, 1)
	toastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

	ruleStyle   = lipgloss.NewStyle().Foreground(colorBorder)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorNavy)
)
