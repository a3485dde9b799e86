package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"

	"github.com/osa030/focusbox/internal/app/backup"
	"github.com/osa030/focusbox/internal/app/focus"
	"github.com/osa030/focusbox/internal/domain/settings"
	"github.com/osa030/focusbox/internal/domain/theme"
	"github.com/osa030/focusbox/internal/infra/player"
	"github.com/osa030/focusbox/internal/ui/tui"
)

func newTable(t theme.Theme, headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary))
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func (a *application) currentTheme(ctx context.Context) theme.Theme {
	s, err := a.repo.LoadSettings(ctx)
	if err != nil {
		return theme.Default()
	}
	return s.Theme
}

// todo

func (a *application) todoList(ctx context.Context) error {
	todos, err := a.repo.LoadTodos(ctx)
	if err != nil {
		return err
	}
	if todos.Len() == 0 {
		fmt.Println("No todos yet. Add one with: focusbox todo add <text>")
		return nil
	}

	tbl := newTable(a.currentTheme(ctx), "#", "ID", "Done", "Todo")
	for i, item := range todos.Items() {
		done := " "
		if item.Completed {
			done = "x"
		}
		tbl.Row(strconv.Itoa(i+1), shortID(item.ID), done, item.Text)
	}
	fmt.Println(tbl.Render())
	fmt.Printf("%d of %d completed (%.0f%%)\n", todos.CompletedCount(), todos.Len(), todos.Progress()*100)
	return nil
}

func (a *application) todoAdd(ctx context.Context, words []string) error {
	todos, err := a.repo.LoadTodos(ctx)
	if err != nil {
		return err
	}
	item, err := todos.Add(strings.Join(words, " "))
	if err != nil {
		return err
	}
	if err := a.repo.SaveTodos(ctx, todos); err != nil {
		return err
	}
	fmt.Printf("Added %s: %s\n", shortID(item.ID), item.Text)
	return nil
}

func (a *application) todoDone(ctx context.Context, ref string) error {
	todos, err := a.repo.LoadTodos(ctx)
	if err != nil {
		return err
	}
	item, err := todos.Resolve(ref)
	if err != nil {
		return err
	}
	item, err = todos.Toggle(item.ID)
	if err != nil {
		return err
	}
	if err := a.repo.SaveTodos(ctx, todos); err != nil {
		return err
	}
	state := "open"
	if item.Completed {
		state = "done"
	}
	fmt.Printf("%s is %s\n", item.Text, state)
	return nil
}

func (a *application) todoRemove(ctx context.Context, ref string) error {
	todos, err := a.repo.LoadTodos(ctx)
	if err != nil {
		return err
	}
	item, err := todos.Resolve(ref)
	if err != nil {
		return err
	}
	if err := todos.Delete(item.ID); err != nil {
		return err
	}
	if err := a.repo.SaveTodos(ctx, todos); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", item.Text)
	return nil
}

// note

func (a *application) noteList(ctx context.Context) error {
	notes, err := a.repo.LoadNotes(ctx)
	if err != nil {
		return err
	}
	if len(notes.Notes()) == 0 {
		fmt.Println("No notes yet. Create one with: focusbox note new <title>")
		return nil
	}

	tbl := newTable(a.currentTheme(ctx), "ID", "Title", "Updated", "Preview")
	for _, n := range notes.Notes() {
		tbl.Row(shortID(n.ID), n.Title, n.UpdatedAt.Local().Format(time.DateTime), preview(n.Content, 40))
	}
	fmt.Println(tbl.Render())
	return nil
}

func (a *application) noteNew(ctx context.Context, title, content string) error {
	notes, err := a.repo.LoadNotes(ctx)
	if err != nil {
		return err
	}
	n := notes.Create()
	if title != "" || content != "" {
		if title == "" {
			title = n.Title
		}
		if n, err = notes.Update(n.ID, title, content); err != nil {
			return err
		}
	}
	if err := a.repo.SaveNotes(ctx, notes); err != nil {
		return err
	}
	fmt.Printf("Created %s: %s\n", shortID(n.ID), n.Title)
	return nil
}

func (a *application) noteEdit(ctx context.Context, id string) error {
	notes, err := a.repo.LoadNotes(ctx)
	if err != nil {
		return err
	}
	n, err := notes.Get(id)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(tui.NewNoteEditor(n, tui.NewStyles(a.currentTheme(ctx))), tea.WithContext(ctx)).Run()
	if err != nil {
		return ignoreInterrupt(err)
	}
	editor, ok := final.(tui.NoteEditor)
	if !ok || !editor.Saved() {
		fmt.Println("Discarded changes")
		return nil
	}

	if n, err = notes.Update(n.ID, editor.Title(), editor.Content()); err != nil {
		return err
	}
	if err := a.repo.SaveNotes(ctx, notes); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", n.Title)
	return nil
}

func (a *application) noteShow(ctx context.Context, id string) error {
	notes, err := a.repo.LoadNotes(ctx)
	if err != nil {
		return err
	}
	n, err := notes.Get(id)
	if err != nil {
		return err
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.currentTheme(ctx).Primary))
	fmt.Println(title.Render(n.Title))
	fmt.Printf("Created %s, updated %s\n\n", n.CreatedAt.Local().Format(time.DateTime), n.UpdatedAt.Local().Format(time.DateTime))
	fmt.Println(n.Content)
	return nil
}

func (a *application) noteRemove(ctx context.Context, id string) error {
	notes, err := a.repo.LoadNotes(ctx)
	if err != nil {
		return err
	}
	n, err := notes.Get(id)
	if err != nil {
		return err
	}
	if err := notes.Delete(n.ID); err != nil {
		return err
	}
	if err := a.repo.SaveNotes(ctx, notes); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", n.Title)
	return nil
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

// theme & settings

func (a *application) themeList(ctx context.Context) error {
	current := a.currentTheme(ctx)
	for _, t := range theme.All() {
		marker := "  "
		if t.ID == current.ID {
			marker = "* "
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(t.Primary)).Render("  ") +
			lipgloss.NewStyle().Background(lipgloss.Color(t.Secondary)).Render("  ") +
			lipgloss.NewStyle().Background(lipgloss.Color(t.Accent)).Render("  ")
		fmt.Printf("%s%-8s %s %s\n", marker, t.ID, swatch, t.Name)
	}
	return nil
}

func (a *application) themeSet(ctx context.Context, id string) error {
	return a.settingsSet(ctx, map[string]string{"theme": id})
}

func (a *application) settingsShow(ctx context.Context) error {
	s, err := a.repo.LoadSettings(ctx)
	if err != nil {
		return err
	}
	background := s.BackgroundImage
	if background == "" {
		background = "none"
	}
	fmt.Printf("theme:          %s (%s)\n", s.Theme.ID, s.Theme.Name)
	fmt.Printf("background:     %s\n", background)
	fmt.Printf("sound_enabled:  %t\n", s.SoundEnabled)
	fmt.Printf("notifications:  %t\n", s.Notifications)
	fmt.Printf("custom audios:  %d\n", len(s.CustomAudios))
	return nil
}

func (a *application) settingsSet(ctx context.Context, values map[string]string) error {
	s, err := a.repo.LoadSettings(ctx)
	if err != nil {
		return err
	}
	update := make(map[string]any, len(values))
	for k, v := range values {
		update[k] = v
	}
	if err := s.Apply(update); err != nil {
		return errors.Wrapf(err, "valid keys: %s", strings.Join(settings.Keys, ", "))
	}
	if err := a.repo.SaveSettings(ctx, s); err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s = %s\n", k, values[k])
	}
	return nil
}

// focus

func (a *application) focusService() *focus.Service {
	return focus.NewService(a.repo, player.New(a.cfg.Focus.PlayerCommand, a.cfg.Focus.SoundDir))
}

func (a *application) focusStart(ctx context.Context, sound string, volume int) error {
	svc := a.focusService()
	if sound != "" || volume >= 0 {
		st, err := svc.Status(ctx)
		if err != nil {
			return err
		}
		if sound == "" {
			sound = st.Sound
		}
		if volume < 0 {
			volume = st.Volume
		}
		if _, err := svc.Configure(ctx, sound, volume); err != nil {
			return err
		}
	}

	every := time.Duration(a.cfg.Focus.QuoteSeconds) * time.Second
	model := tui.NewFocusModel(ctx, svc, tui.NewStyles(a.currentTheme(ctx)), every)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		// the view exits without stopping when the context is cancelled
		_, stopErr := svc.Stop(context.WithoutCancel(ctx))
		return errors.CombineErrors(ignoreInterrupt(err), stopErr)
	}
	return nil
}

func (a *application) focusStop(ctx context.Context) error {
	st, err := a.focusService().Stop(ctx)
	if err != nil {
		return err
	}
	return printFocus(os.Stdout, st)
}

func (a *application) focusStatus(ctx context.Context) error {
	st, err := a.focusService().Status(ctx)
	if err != nil {
		return err
	}
	return printFocus(os.Stdout, st)
}

func printFocus(w io.Writer, st focus.State) error {
	state := "inactive"
	if st.Active {
		state = "active"
	}
	_, err := fmt.Fprintf(w, "focus mode: %s\nsound:      %s\nvolume:     %d%%\n", state, st.Sound, st.Volume)
	return err
}

// data

func (a *application) dataExport(ctx context.Context, path string) error {
	svc := backup.NewService(a.repo)
	if path == "-" {
		_, err := svc.Export(ctx, os.Stdout)
		return err
	}
	if path == "" {
		path = backup.FileName(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create backup file")
	}
	doc, err := svc.Export(ctx, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d todos and %d notes to %s\n", len(doc.Todos), len(doc.Notes), path)
	return nil
}

func (a *application) dataImport(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open backup file")
	}
	defer f.Close()

	res, err := backup.NewService(a.repo).Import(ctx, f)
	if err != nil {
		return err
	}
	fmt.Printf("Imported settings=%t todos=%d notes=%d\n", res.Settings, res.Todos, res.Notes)
	return nil
}

func (a *application) dataClear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return errors.New("refusing to delete all data without --yes")
	}
	if err := backup.NewService(a.repo).ClearAll(ctx); err != nil {
		return err
	}
	fmt.Println("All data cleared")
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
