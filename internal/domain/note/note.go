// Package note provides the note domain entity.
package note

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Default titles.
const (
	NewTitle      = "New note"
	UntitledTitle = "Untitled note"
)

// ErrNotFound is returned for an unknown note ID.
var ErrNotFound = errors.New("note not found")

// Note represents a titled free-text note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Book holds notes, most recently created first.
type Book struct {
	notes []Note
	now   func() time.Time
}

// NewBook creates a book from stored notes.
func NewBook(notes []Note) *Book {
	return &Book{
		notes: append([]Note(nil), notes...),
		now:   time.Now,
	}
}

// Notes returns a copy of the notes.
func (b *Book) Notes() []Note {
	return append([]Note{}, b.notes...)
}

// Create prepends an empty note.
func (b *Book) Create() Note {
	now := b.now()
	n := Note{
		ID:        uuid.New().String(),
		Title:     NewTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.notes = append([]Note{n}, b.notes...)
	return n
}

// Get returns the note with the given ID or unique ID prefix.
func (b *Book) Get(id string) (Note, error) {
	i, err := b.index(id)
	if err != nil {
		return Note{}, err
	}
	return b.notes[i], nil
}

// Update replaces title and content. A blank title becomes UntitledTitle.
func (b *Book) Update(id, title, content string) (Note, error) {
	i, err := b.index(id)
	if err != nil {
		return Note{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = UntitledTitle
	}
	b.notes[i].Title = title
	b.notes[i].Content = content
	b.notes[i].UpdatedAt = b.now()
	return b.notes[i], nil
}

// Delete removes the note with the given ID.
func (b *Book) Delete(id string) error {
	i, err := b.index(id)
	if err != nil {
		return err
	}
	b.notes = append(b.notes[:i], b.notes[i+1:]...)
	return nil
}

func (b *Book) index(id string) (int, error) {
	match := -1
	for i, n := range b.notes {
		if n.ID == id {
			return i, nil
		}
		if id != "" && strings.HasPrefix(n.ID, id) {
			if match >= 0 {
				return -1, errors.Wrapf(ErrNotFound, "ambiguous id %s", id)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return match, nil
}
