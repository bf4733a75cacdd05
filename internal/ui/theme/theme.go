// Package theme holds the colors and styles shared by the views.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Orange = lipgloss.Color("#FF6600")

	// DepthColors cycles through these for nested comment bars.
	DepthColors = []lipgloss.Color{
		"#FF6600", // orange
		"#828282", // gray
		"#00BFFF", // deep sky blue
		"#32CD32", // lime green
		"#FFD700", // gold
		"#FF69B4", // hot pink
		"#9370DB", // medium purple
		"#20B2AA", // light sea green
	}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	SelectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Orange)

	MetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	SelectedMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC"))

	IndexStyle = lipgloss.NewStyle().
			Foreground(Orange).
			Width(4).
			Align(lipgloss.Right)

	AuthorStyle = lipgloss.NewStyle().
			Foreground(Orange).
			Bold(true)

	OPBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Orange).
			Bold(true)

	SelectedLineStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	// Story list fetch markers.
	CachedMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#32CD32"))

	LoadingMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	HeaderMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282")).
			Padding(0, 1)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	StatusBarBrand = lipgloss.NewStyle().
			Background(Orange).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	StatusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	BusyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#555555")).
			Foreground(lipgloss.Color("#FFD700")).
			Padding(0, 1)

	OfflineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)
