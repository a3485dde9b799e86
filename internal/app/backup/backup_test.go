package backup

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/focusbox/internal/infra/store"
)

func newTestService(t *testing.T) (*Service, *store.Repository) {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	repo := store.NewRepository(s)
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "productivity-app-backup-2026-03-04.json", got)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src, repo := newTestService(t)

	todos, err := repo.LoadTodos(ctx)
	require.NoError(t, err)
	_, err = todos.Add("write report")
	require.NoError(t, err)
	_, err = todos.Add("review")
	require.NoError(t, err)
	require.NoError(t, repo.SaveTodos(ctx, todos))

	notes, err := repo.LoadNotes(ctx)
	require.NoError(t, err)
	n := notes.Create()
	_, err = notes.Update(n.ID, "Ideas", "more tests")
	require.NoError(t, err)
	require.NoError(t, repo.SaveNotes(ctx, notes))

	st, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Apply(map[string]any{"theme": "ocean", "sound_enabled": "false"}))
	require.NoError(t, repo.SaveSettings(ctx, st))

	var buf bytes.Buffer
	doc, err := src.Export(ctx, &buf)
	require.NoError(t, err)
	assert.Len(t, doc.Todos, 2)
	assert.Contains(t, buf.String(), "\n  \"settings\"")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Contains(t, raw, "exportDate")

	dst, dstRepo := newTestService(t)
	res, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, Result{Settings: true, Todos: 2, Notes: 1}, res)

	gotTodos, err := dstRepo.LoadTodos(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, gotTodos.Len())
	assert.Equal(t, "write report", gotTodos.Items()[0].Text)

	gotNotes, err := dstRepo.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ideas", gotNotes.Notes()[0].Title)

	gotSettings, err := dstRepo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ocean", gotSettings.Theme.ID)
	assert.False(t, gotSettings.SoundEnabled)
}

func TestImport_PartialDocument(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	notes, err := repo.LoadNotes(ctx)
	require.NoError(t, err)
	notes.Create()
	require.NoError(t, repo.SaveNotes(ctx, notes))

	res, err := svc.Import(ctx, strings.NewReader(`{"todos":[{"id":"a","text":"one","completed":true,"createdAt":"2026-01-01T00:00:00Z"}]}`))
	require.NoError(t, err)
	assert.Equal(t, Result{Todos: 1}, res)

	// notes absent from the document are kept
	notes, err = repo.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes.Notes(), 1)

	todos, err := repo.LoadTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, todos.CompletedCount())
}

func TestImport_MalformedLeavesStore(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	todos, err := repo.LoadTodos(ctx)
	require.NoError(t, err)
	_, err = todos.Add("keep me")
	require.NoError(t, err)
	require.NoError(t, repo.SaveTodos(ctx, todos))

	for _, input := range []string{`not json`, `{"todos": "nope"}`, `[1,2,3]`} {
		_, err := svc.Import(ctx, strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMalformedBackup, input)
	}

	todos, err = repo.LoadTodos(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, todos.Len())
	assert.Equal(t, "keep me", todos.Items()[0].Text)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	todos, err := repo.LoadTodos(ctx)
	require.NoError(t, err)
	_, err = todos.Add("x")
	require.NoError(t, err)
	require.NoError(t, repo.SaveTodos(ctx, todos))

	require.NoError(t, svc.ClearAll(ctx))
	keys, err := repo.Store().Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
