package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the color palette for terminal rendering
var CurrentTheme = struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Accent    lipgloss.Color
	Liked     lipgloss.Color
}{
	Primary:   lipgloss.Color("#00afff"),
	Text:      lipgloss.Color("#ffffff"),
	TextMuted: lipgloss.Color("#808080"),
	Accent:    lipgloss.Color("#ffd700"),
	Liked:     lipgloss.Color("#ff5f87"),
}

// Styles derived from the current theme.
var (
	UserStyle      = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	SystemStyle    = lipgloss.NewStyle().Foreground(CurrentTheme.Text)
	MutedStyle     = lipgloss.NewStyle().Foreground(CurrentTheme.TextMuted)
	VenueNameStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	LikedStyle     = lipgloss.NewStyle().Foreground(CurrentTheme.Liked)
)
