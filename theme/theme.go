package theme

import "github.com/charmbracelet/lipgloss"

// Colors holds the named colors used across sprout's terminal output.
type Colors struct {
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	Orange lipgloss.Color
	Cyan   lipgloss.Color
	Blue   lipgloss.Color
	Violet lipgloss.Color
	Muted  lipgloss.Color
}

// Theme bundles the color palette with a handful of shared styles.
type Theme struct {
	Colors Colors

	Muted  lipgloss.Style
	Italic lipgloss.Style
	Accent lipgloss.Style
	Bold   lipgloss.Style
}

// DefaultTheme is the palette used by the CLI and log formatter.
var DefaultTheme = newDefaultTheme()

func newDefaultTheme() *Theme {
	c := Colors{
		Green:  lipgloss.Color("#98BB6C"),
		Yellow: lipgloss.Color("#FF9E3B"),
		Red:    lipgloss.Color("#FF5D62"),
		Orange: lipgloss.Color("#FFA066"),
		Cyan:   lipgloss.Color("#7E9CD8"),
		Blue:   lipgloss.Color("#7FB4CA"),
		Violet: lipgloss.Color("#957FB8"),
		Muted:  lipgloss.Color("#727169"),
	}

	return &Theme{
		Colors: c,
		Muted:  lipgloss.NewStyle().Foreground(c.Muted),
		Italic: lipgloss.NewStyle().Italic(true),
		Accent: lipgloss.NewStyle().Foreground(c.Cyan),
		Bold:   lipgloss.NewStyle().Bold(true),
	}
}
