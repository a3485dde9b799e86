package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osa030/focusbox/internal/domain/note"
)

// NoteEditor edits a note's title and content.
type NoteEditor struct {
	title   textinput.Model
	content textarea.Model
	styles  Styles
	save    key.Binding
	cancel  key.Binding
	next    key.Binding
	saved   bool
}

// NewNoteEditor creates an editor loaded with n.
func NewNoteEditor(n note.Note, styles Styles) NoteEditor {
	title := textinput.New()
	title.Placeholder = note.UntitledTitle
	title.CharLimit = 120
	title.SetValue(n.Title)
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Start writing..."
	content.SetWidth(60)
	content.SetHeight(12)
	content.SetValue(n.Content)

	return NoteEditor{
		title:   title,
		content: content,
		styles:  styles,
		save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "discard")),
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
	}
}

// Saved reports whether the editor was closed with save.
func (m NoteEditor) Saved() bool {
	return m.saved
}

// Title returns the edited title.
func (m NoteEditor) Title() string {
	return m.title.Value()
}

// Content returns the edited content.
func (m NoteEditor) Content() string {
	return m.content.Value()
}

// Init implements tea.Model.
func (m NoteEditor) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m NoteEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.save):
			m.saved = true
			return m, tea.Quit
		case key.Matches(msg, m.cancel):
			return m, tea.Quit
		case key.Matches(msg, m.next):
			if m.title.Focused() {
				m.title.Blur()
				return m, m.content.Focus()
			}
			m.content.Blur()
			return m, m.title.Focus()
		}
	}

	var cmd tea.Cmd
	if m.title.Focused() {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m NoteEditor) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Edit note"))
	b.WriteString("\n\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render(helpLine(m.save, m.next, m.cancel)))
	return m.styles.Frame.Render(b.String())
}
