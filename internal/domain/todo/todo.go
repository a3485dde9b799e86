// Package todo provides the todo list domain entity.
package todo

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Errors
var (
	ErrEmptyText = errors.New("todo text is empty")
	ErrNotFound  = errors.New("todo not found")
)

// Item represents a single todo.
type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// List is an ordered todo list. New items are appended.
type List struct {
	items []Item
}

// NewList creates a list from stored items.
func NewList(items []Item) *List {
	return &List{items: append([]Item(nil), items...)}
}

// Items returns a copy of the items in display order.
func (l *List) Items() []Item {
	return append([]Item{}, l.items...)
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Add appends a new item with trimmed text.
func (l *List) Add(text string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, ErrEmptyText
	}
	item := Item{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	l.items = append(l.items, item)
	return item, nil
}

// Toggle flips the completed flag of the item with the given ID.
func (l *List) Toggle(id string) (Item, error) {
	i := l.index(id)
	if i < 0 {
		return Item{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	l.items[i].Completed = !l.items[i].Completed
	return l.items[i], nil
}

// Delete removes the item with the given ID.
func (l *List) Delete(id string) error {
	i := l.index(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "id %s", id)
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Resolve finds an item by full ID, unique ID prefix, or 1-based position.
func (l *List) Resolve(ref string) (Item, error) {
	if i := l.index(ref); i >= 0 {
		return l.items[i], nil
	}
	if n, ok := position(ref); ok && n >= 1 && n <= len(l.items) {
		return l.items[n-1], nil
	}
	var found []Item
	for _, it := range l.items {
		if strings.HasPrefix(it.ID, ref) {
			found = append(found, it)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	return Item{}, errors.Wrapf(ErrNotFound, "ref %s", ref)
}

// CompletedCount returns the number of completed items.
func (l *List) CompletedCount() int {
	n := 0
	for _, it := range l.items {
		if it.Completed {
			n++
		}
	}
	return n
}

// Progress returns the completed fraction, 0 for an empty list.
func (l *List) Progress() float64 {
	if len(l.items) == 0 {
		return 0
	}
	return float64(l.CompletedCount()) / float64(len(l.items))
}

func (l *List) index(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func position(ref string) (int, bool) {
	if ref == "" || len(ref) > 6 {
		return 0, false
	}
	n := 0
	for _, r := range ref {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
