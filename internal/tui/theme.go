package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorGlow    lipgloss.Color = "#74c7ec"
	colorPortal  lipgloss.Color = "#cba6f7"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorMantle  lipgloss.Color = "#181825"
	colorSurface lipgloss.Color = "#313244"
)

var (
	headerBarStyle = lipgloss.NewStyle().Background(colorMantle).Foreground(colorPortal).Bold(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface)
	footerStyle    = lipgloss.NewStyle().Background(colorMantle)

	titleStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorGlow)
	labelStyle    = lipgloss.NewStyle().Foreground(colorGlow)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	flipStyle     = lipgloss.NewStyle().Foreground(colorBorder).Faint(true)

	buttonStyle        = lipgloss.NewStyle().Foreground(colorAccent)
	primaryButtonStyle = lipgloss.NewStyle().Foreground(colorMantle).Background(colorAccent).Bold(true)

	ringTrackStyle  = lipgloss.NewStyle().Foreground(colorBorder)
	ringFillStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	ringMarkerStyle = lipgloss.NewStyle().Foreground(colorGlow).Bold(true)
	dialValueStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	itemStyle       = lipgloss.NewStyle().Foreground(colorGlow)
	itemActiveStyle = lipgloss.NewStyle().Foreground(colorMantle).Background(colorPortal).Bold(true)
	focusStyle      = lipgloss.NewStyle().Foreground(colorPortal)
)
