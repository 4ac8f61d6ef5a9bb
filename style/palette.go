package style

import "github.com/charmbracelet/lipgloss"

// Badge colors, one pair per catalogue kind.
var (
	BadgeText = lipgloss.Color("#1e1e2e")

	SeriesBadge   = lipgloss.Color("#cba6f7")
	EpisodeBadge  = lipgloss.Color("#89b4fa")
	SeasonBadge   = lipgloss.Color("#a6e3a1")
	CategoryBadge = lipgloss.Color("#fab387")
)
