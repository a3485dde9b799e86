package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/focusbox/internal/domain/theme"
)

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Clock    lipgloss.Style
	Calm     lipgloss.Style
	Steady   lipgloss.Style
	Critical lipgloss.Style
	Subtle   lipgloss.Style
	Error    lipgloss.Style
	Frame    lipgloss.Style
	theme    theme.Theme
}

// NewStyles builds the styles for t.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)),
		Clock:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Text)).Padding(0, 1),
		Calm:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Secondary)),
		Steady:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		Subtle:   lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Primary)).
			Padding(1, 3),
		theme: t,
	}
}

// Bar returns a progress bar in the theme's gradient.
func (s Styles) Bar(width int) progress.Model {
	return progress.New(
		progress.WithGradient(s.theme.Primary, s.theme.Accent),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
}

// clock formats seconds as MM:SS.
func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
