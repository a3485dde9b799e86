package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osa030/focusbox/internal/app/focus"
)

const volumeStep = 10

type (
	quoteMsg      struct{}
	startFocusMsg struct{}
)

// FocusModel is the live focus mode view. Focus mode is active while the
// view runs and is stopped when it quits.
type FocusModel struct {
	ctx       context.Context
	service   *focus.Service
	keys      KeyMap
	styles    Styles
	bar       progress.Model
	every     time.Duration
	state     focus.State
	quote     string
	nextQuote func() string
	err       error
}

// NewFocusModel creates the focus view. Quotes rotate every quoteEvery.
func NewFocusModel(ctx context.Context, service *focus.Service, styles Styles, quoteEvery time.Duration) FocusModel {
	return FocusModel{
		ctx:       ctx,
		service:   service,
		keys:      DefaultKeyMap(),
		styles:    styles,
		bar:       styles.Bar(20),
		every:     quoteEvery,
		quote:     focus.RandomQuote(),
		nextQuote: focus.RandomQuote,
	}
}

// Init starts focus mode and the quote rotation.
func (m FocusModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startFocusMsg{} },
		m.scheduleQuote(),
	)
}

func (m FocusModel) scheduleQuote() tea.Cmd {
	return tea.Tick(m.every, func(time.Time) tea.Msg { return quoteMsg{} })
}

// State returns the last known focus state.
func (m FocusModel) State() focus.State {
	return m.state
}

// Update implements tea.Model.
func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startFocusMsg:
		m.state, m.err = m.service.Start(m.ctx)
	case quoteMsg:
		m.quote = m.nextQuote()
		return m, m.scheduleQuote()
	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.state, m.err = m.service.Stop(m.ctx)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.state.Playing {
				m.state, m.err = m.service.Stop(m.ctx)
			} else {
				m.state, m.err = m.service.Start(m.ctx)
			}
		case key.Matches(msg, m.keys.NextSound):
			m.reconfigure(nextSound(m.state.Sound), m.state.Volume)
		case key.Matches(msg, m.keys.MinutesUp):
			m.reconfigure(m.state.Sound, m.state.Volume+volumeStep)
		case key.Matches(msg, m.keys.MinutesDown):
			m.reconfigure(m.state.Sound, m.state.Volume-volumeStep)
		}
	}
	return m, nil
}

// reconfigure saves the selection and restarts playback if it was active.
func (m *FocusModel) reconfigure(sound string, volume int) {
	wasActive := m.state.Active
	st, err := m.service.Configure(m.ctx, sound, volume)
	if err != nil {
		m.err = err
		return
	}
	m.state = st
	if wasActive {
		m.state, m.err = m.service.Start(m.ctx)
	}
}

func nextSound(current string) string {
	for i, s := range focus.Sounds {
		if s.ID == current {
			return focus.Sounds[(i+1)%len(focus.Sounds)].ID
		}
	}
	return focus.Sounds[0].ID
}

// View implements tea.Model.
func (m FocusModel) View() string {
	name := m.state.Sound
	if s, err := focus.LookupSound(m.state.Sound); err == nil {
		name = s.Name
	}
	playing := "silent"
	if m.state.Playing {
		playing = "playing"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Focus mode"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Clock.Render("“" + m.quote + "”"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Sound: %s (%s)\n", name, playing)
	fmt.Fprintf(&b, "Volume %3d%% %s\n", m.state.Volume, m.bar.ViewAs(float64(m.state.Volume)/100))
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	volume := key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "volume"))
	b.WriteString(m.styles.Subtle.Render(helpLine(m.keys.Toggle, m.keys.NextSound, volume, m.keys.Quit)))
	return m.styles.Frame.Render(b.String())
}
