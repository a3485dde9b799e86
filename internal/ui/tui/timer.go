package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/focusbox/internal/app/timer"
	"github.com/osa030/focusbox/internal/domain/countdown"
)

const barWidth = 40

// TimerModel is the live countdown widget.
type TimerModel struct {
	timer  *timer.Timer
	keys   KeyMap
	styles Styles
	bar    progress.Model
	ticker ticker
	err    error
}

// NewTimerModel creates the countdown view. Engine events are delivered to
// whatever handler the caller registered on t.Countdown().
func NewTimerModel(t *timer.Timer, styles Styles, interval time.Duration) TimerModel {
	return TimerModel{
		timer:  t,
		keys:   DefaultKeyMap(),
		styles: styles,
		bar:    styles.Bar(barWidth),
		ticker: ticker{interval: interval},
	}
}

// Init implements tea.Model.
func (m TimerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if !m.ticker.current(msg) {
			return m, nil
		}
		m.timer.Countdown().Tick()
		if m.timer.Countdown().IsRunning() {
			return m, m.ticker.next()
		}
		m.ticker.stop()
	case tea.WindowSizeMsg:
		m.bar.Width = min(barWidth, max(10, msg.Width-10))
	}
	return m, nil
}

func (m TimerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ticker.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.err = m.timer.Toggle()
		if m.timer.Countdown().IsRunning() {
			return m, m.ticker.start()
		}
		m.ticker.stop()
	case key.Matches(msg, m.keys.Reset):
		m.err = m.timer.Reset()
		m.ticker.stop()
	case key.Matches(msg, m.keys.MinutesUp):
		m.adjust(func() error { return m.timer.AdjustMinutes(1) })
	case key.Matches(msg, m.keys.MinutesDown):
		m.adjust(func() error { return m.timer.AdjustMinutes(-1) })
	case key.Matches(msg, m.keys.SecondsUp):
		m.adjust(func() error { return m.timer.AdjustSeconds(1) })
	case key.Matches(msg, m.keys.SecondsDown):
		m.adjust(func() error { return m.timer.AdjustSeconds(-1) })
	default:
		if i, err := strconv.Atoi(msg.String()); err == nil && i >= 1 && i <= len(timer.Presets) {
			m.adjust(func() error { return m.timer.ApplyPreset(timer.Presets[i-1]) })
		}
	}
	return m, nil
}

// adjust edits the input duration while the timer is idle or paused.
func (m *TimerModel) adjust(fn func() error) {
	if !m.timer.Editable() {
		return
	}
	m.err = fn()
	m.ticker.stop()
}

// View implements tea.Model.
func (m TimerModel) View() string {
	c := m.timer.Countdown()
	status := c.Status()

	var clockStyle lipgloss.Style
	switch m.timer.Urgency() {
	case timer.UrgencyCalm:
		clockStyle = m.styles.Calm
	case timer.UrgencySteady:
		clockStyle = m.styles.Steady
	default:
		clockStyle = m.styles.Critical
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Timer"))
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Render(clock(c.Remaining())))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtle.Render(statusLabel(status)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.timer.Progress()))
	b.WriteString("\n\n")

	presets := make([]string, len(timer.Presets))
	for i, p := range timer.Presets {
		presets[i] = strconv.Itoa(i+1) + ":" + p.Label
	}
	b.WriteString(m.styles.Subtle.Render(strings.Join(presets, " ")))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Subtle.Render(helpLine(m.keys.Toggle, m.keys.Reset, m.keys.MinutesUp, m.keys.SecondsUp, m.keys.Quit)))
	return m.styles.Frame.Render(b.String())
}

func statusLabel(s countdown.Status) string {
	switch s {
	case countdown.StatusRunning:
		return "running"
	case countdown.StatusPaused:
		return "paused"
	case countdown.StatusFinished:
		return "time's up!"
	default:
		return "ready"
	}
}
