// Package tui provides the live terminal views.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the bindings shared by the live views.
type KeyMap struct {
	Toggle      key.Binding
	Reset       key.Binding
	MinutesUp   key.Binding
	MinutesDown key.Binding
	SecondsUp   key.Binding
	SecondsDown key.Binding
	NextSound   key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/pause")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		MinutesUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "minutes")),
		MinutesDown: key.NewBinding(key.WithKeys("-", "_")),
		SecondsUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "seconds")),
		SecondsDown: key.NewBinding(key.WithKeys("[")),
		NextSound:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next sound")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders the help text of the given bindings.
func helpLine(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}

// tickMsg drives an engine by one second. Messages from a stale generation
// are dropped so that pausing and restarting never doubles the tick rate.
type tickMsg struct {
	gen int
}

type ticker struct {
	gen      int
	interval time.Duration
}

func (t *ticker) start() tea.Cmd {
	t.gen++
	return t.next()
}

func (t *ticker) next() tea.Cmd {
	gen := t.gen
	return tea.Tick(t.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (t *ticker) stop() {
	t.gen++
}

func (t *ticker) current(msg tickMsg) bool {
	return msg.gen == t.gen
}
