package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#2563EB")
	Muted       = lipgloss.Color("#6B7280")
	Destructive = lipgloss.Color("#DC2626")
	Star        = lipgloss.Color("#FACC15")
	Success     = lipgloss.Color("#15803D")
)

type Styles struct {
	Panel        lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	FieldError   lipgloss.Style
	Banner       lipgloss.Style
	Button       lipgloss.Style
	ButtonOff    lipgloss.Style
	Star         lipgloss.Style
	Badge        lipgloss.Style
	SectionTitle lipgloss.Style
	Headline     lipgloss.Style
	Help         lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(1, 2),
		Title:        lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:        lipgloss.NewStyle().Bold(true),
		FieldError:   lipgloss.NewStyle().Foreground(Destructive),
		Banner:       lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Button:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(Primary).Padding(0, 2),
		ButtonOff:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(Muted).Padding(0, 2),
		Star:         lipgloss.NewStyle().Foreground(Star),
		Badge:        lipgloss.NewStyle().Foreground(Success),
		SectionTitle: lipgloss.NewStyle().Foreground(Muted),
		Headline:     lipgloss.NewStyle().Bold(true),
		Help:         lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
	}
}
