package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fenilsonani/project-forge/internal/detector"
)

// Theme colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#A78BFA")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#3B82F6")
	Muted     = lipgloss.Color("#6B7280")
	Text      = lipgloss.Color("#F3F4F6")
	TextDim   = lipgloss.Color("#9CA3AF")
	Border    = lipgloss.Color("#4B5563")
	BgDark    = lipgloss.Color("#1F2937")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Info)

	FileSizeStyle = lipgloss.NewStyle().
			Foreground(Warning)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgDark).
			Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(Text).
			Background(Muted).
			Padding(0, 2)

	ActiveButtonStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Primary).
				Bold(true).
				Padding(0, 2)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// Cursor returns the picker marker for a row
func Cursor(selected bool) string {
	if selected {
		return SelectedStyle.Render("❯ ")
	}
	return "  "
}

// ProjectTypeStyle colors a detected project type
func ProjectTypeStyle(t detector.ProjectType) lipgloss.Style {
	switch t {
	case detector.TypePlatformIO, detector.TypeArduino:
		return SuccessStyle
	case detector.TypeGeneral:
		return lipgloss.NewStyle().Foreground(Info).Bold(true)
	default:
		return DimStyle
	}
}
