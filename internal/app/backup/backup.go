// Package backup exports and imports all stored productivity data.
package backup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/domain/note"
	"github.com/osa030/focusbox/internal/domain/settings"
	"github.com/osa030/focusbox/internal/domain/todo"
	"github.com/osa030/focusbox/internal/infra/store"
)

// ErrMalformedBackup is returned when a backup file cannot be decoded.
var ErrMalformedBackup = errors.New("malformed backup")

// Document is the backup file layout.
type Document struct {
	Settings   *settings.Settings `json:"settings,omitempty"`
	Todos      []todo.Item        `json:"todos"`
	Notes      []note.Note        `json:"notes"`
	ExportDate time.Time          `json:"exportDate"`
}

// Result reports what an import restored.
type Result struct {
	Settings bool
	Todos    int
	Notes    int
}

// FileName returns the conventional backup file name for t.
func FileName(t time.Time) string {
	return fmt.Sprintf("productivity-app-backup-%s.json", t.Format(time.DateOnly))
}

// Service reads and writes backups through a repository.
type Service struct {
	repo *store.Repository
	now  func() time.Time
}

// NewService creates a backup service.
func NewService(repo *store.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Export writes every section as indented JSON.
func (s *Service) Export(ctx context.Context, w io.Writer) (Document, error) {
	st, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return Document{}, err
	}
	todos, err := s.repo.LoadTodos(ctx)
	if err != nil {
		return Document{}, err
	}
	notes, err := s.repo.LoadNotes(ctx)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Settings:   &st,
		Todos:      todos.Items(),
		Notes:      notes.Notes(),
		ExportDate: s.now().UTC(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return Document{}, errors.Wrap(err, "failed to encode backup")
	}
	zlog.Info().Msgf("backup exported: todos=%d notes=%d", len(doc.Todos), len(doc.Notes))
	return doc, nil
}

// Import restores the sections present in r. Nothing is written when the
// document cannot be decoded.
func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to read backup")
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, errors.Wrapf(ErrMalformedBackup, "%v", err)
	}

	var res Result
	if doc.Settings != nil {
		if err := s.repo.SaveSettings(ctx, *doc.Settings); err != nil {
			return res, err
		}
		res.Settings = true
	}
	if doc.Todos != nil {
		if err := s.repo.SaveTodos(ctx, todo.NewList(doc.Todos)); err != nil {
			return res, err
		}
		res.Todos = len(doc.Todos)
	}
	if doc.Notes != nil {
		if err := s.repo.SaveNotes(ctx, note.NewBook(doc.Notes)); err != nil {
			return res, err
		}
		res.Notes = len(doc.Notes)
	}
	zlog.Info().Msgf("backup imported: settings=%t todos=%d notes=%d", res.Settings, res.Todos, res.Notes)
	return res, nil
}

// ClearAll removes every stored key.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.Store().Clear(ctx); err != nil {
		return err
	}
	zlog.Info().Msg("all data cleared")
	return nil
}
