package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osa030/focusbox/internal/domain/pomodoro"
)

type cooldownDoneMsg struct{}

// PomodoroModel is the live Pomodoro view.
type PomodoroModel struct {
	engine *pomodoro.Pomodoro
	keys   KeyMap
	styles Styles
	bar    progress.Model
	ticker ticker
	err    error
}

// NewPomodoroModel creates the Pomodoro view.
func NewPomodoroModel(engine *pomodoro.Pomodoro, styles Styles, interval time.Duration) PomodoroModel {
	return PomodoroModel{
		engine: engine,
		keys:   DefaultKeyMap(),
		styles: styles,
		bar:    styles.Bar(barWidth),
		ticker: ticker{interval: interval},
	}
}

// Init implements tea.Model.
func (m PomodoroModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ticker.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.err = m.engine.Toggle()
			if m.engine.IsRunning() {
				return m, m.ticker.start()
			}
			m.ticker.stop()
		case key.Matches(msg, m.keys.Reset):
			m.engine.ResetSession()
			m.ticker.stop()
		}
	case tickMsg:
		if !m.ticker.current(msg) {
			return m, nil
		}
		m.engine.Tick()
		if m.engine.IsRunning() {
			return m, m.ticker.next()
		}
		m.ticker.stop()
		if cd := m.engine.CooldownRemaining(); cd > 0 {
			return m, tea.Tick(cd, func(time.Time) tea.Msg { return cooldownDoneMsg{} })
		}
	case cooldownDoneMsg:
		// redraw once Start is accepted again
	case tea.WindowSizeMsg:
		m.bar.Width = min(barWidth, max(10, msg.Width-10))
	}
	return m, nil
}

// View implements tea.Model.
func (m PomodoroModel) View() string {
	st := m.engine.State()

	title := "Focus time"
	clockStyle := m.styles.Calm
	if st.Phase == pomodoro.PhaseBreak {
		title = "Short break"
		if st.IsLongBreak {
			title = "Long break"
		}
		clockStyle = m.styles.Steady
	}

	state := "paused"
	if st.IsRunning {
		state = "running"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Pomodoro · " + title))
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Render(clock(st.RemainingSeconds)))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtle.Render(state))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.engine.Progress()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Session %d · %d completed", st.CurrentSession, st.CyclesCompleted)
	if st.Phase == pomodoro.PhaseWork && m.engine.NextBreakIsLong() {
		b.WriteString(m.styles.Subtle.Render(" · long break next"))
	}
	b.WriteString("\n")
	if cd := m.engine.CooldownRemaining(); cd > 0 {
		b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("next phase ready in %.1fs", cd.Seconds())))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Subtle.Render(helpLine(m.keys.Toggle, m.keys.Reset, m.keys.Quit)))
	return m.styles.Frame.Render(b.String())
}
