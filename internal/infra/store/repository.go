package store

import (
	"context"

	"github.com/osa030/focusbox/internal/app/focus"
	"github.com/osa030/focusbox/internal/domain/note"
	"github.com/osa030/focusbox/internal/domain/settings"
	"github.com/osa030/focusbox/internal/domain/todo"
)

// Repository provides typed access to the application keys.
type Repository struct {
	store *Store
}

// NewRepository wraps s.
func NewRepository(s *Store) *Repository {
	return &Repository{store: s}
}

// Store returns the underlying store.
func (r *Repository) Store() *Store {
	return r.store
}

// LoadSettings returns the saved settings or the defaults.
func (r *Repository) LoadSettings(ctx context.Context) (settings.Settings, error) {
	return Load(ctx, r.store, KeySettings, settings.Default())
}

// SaveSettings stores the settings.
func (r *Repository) SaveSettings(ctx context.Context, s settings.Settings) error {
	return Save(ctx, r.store, KeySettings, s)
}

// LoadTodos returns the saved todo list.
func (r *Repository) LoadTodos(ctx context.Context) (*todo.List, error) {
	items, err := Load(ctx, r.store, KeyTodos, []todo.Item{})
	if err != nil {
		return nil, err
	}
	return todo.NewList(items), nil
}

// SaveTodos stores the todo list.
func (r *Repository) SaveTodos(ctx context.Context, l *todo.List) error {
	return Save(ctx, r.store, KeyTodos, l.Items())
}

// LoadNotes returns the saved notes.
func (r *Repository) LoadNotes(ctx context.Context) (*note.Book, error) {
	notes, err := Load(ctx, r.store, KeyNotes, []note.Note{})
	if err != nil {
		return nil, err
	}
	return note.NewBook(notes), nil
}

// SaveNotes stores the notes.
func (r *Repository) SaveNotes(ctx context.Context, b *note.Book) error {
	return Save(ctx, r.store, KeyNotes, b.Notes())
}

// LoadFocus returns the saved focus mode state.
func (r *Repository) LoadFocus(ctx context.Context) (focus.State, error) {
	return Load(ctx, r.store, KeyFocus, focus.DefaultState())
}

// SaveFocus stores the focus mode state.
func (r *Repository) SaveFocus(ctx context.Context, s focus.State) error {
	return Save(ctx, r.store, KeyFocus, s)
}
