package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorSurfaceFg  = ac("235", "252")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorError      = ac("160", "203")
	colorSuccess    = ac("28", "114")
	colorSelectedBg = ac("#e9e9e9", "#262626")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleLink     = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
	styleLinkKey  = lipgloss.NewStyle().Foreground(colorMuted)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorSuccess)
	styleLabel    = lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true)
	styleButton   = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
	styleDisabled = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	styleSelected = lipgloss.NewStyle().Background(colorSelectedBg).Bold(true)
)
