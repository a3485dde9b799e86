package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/focusbox/internal/app/focus"
	"github.com/osa030/focusbox/internal/domain/settings"
)

func TestRepository_Defaults(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(openTestStore(t))

	s, err := r.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)

	todos, err := r.LoadTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, todos.Len())

	notes, err := r.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes.Notes())

	f, err := r.LoadFocus(ctx)
	require.NoError(t, err)
	assert.Equal(t, focus.DefaultState(), f)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(openTestStore(t))

	todos, err := r.LoadTodos(ctx)
	require.NoError(t, err)
	item, err := todos.Add("ship it")
	require.NoError(t, err)
	require.NoError(t, r.SaveTodos(ctx, todos))

	notes, err := r.LoadNotes(ctx)
	require.NoError(t, err)
	n := notes.Create()
	require.NoError(t, r.SaveNotes(ctx, notes))

	s := settings.Default()
	require.NoError(t, s.Apply(map[string]any{"theme": "sunset"}))
	require.NoError(t, r.SaveSettings(ctx, s))

	todos, err = r.LoadTodos(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, todos.Len())
	assert.Equal(t, item.ID, todos.Items()[0].ID)
	assert.True(t, item.CreatedAt.Equal(todos.Items()[0].CreatedAt))

	notes, err = r.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, n.ID, notes.Notes()[0].ID)

	s, err = r.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sunset", s.Theme.ID)
}
