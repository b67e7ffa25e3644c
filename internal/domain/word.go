package domain

import (
	"strconv"
	"time"
)

// Word is a stored vocabulary item. Text is the natural key and is kept
// exactly as submitted by the caller.
type Word struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// Context is a sentence in which the user encountered a word.
type Context struct {
	ID        int64
	WordID    int64
	Text      string
	CreatedAt time.Time
}

// Definition is one sense of a word, grouped by category (part of speech).
type Definition struct {
	ID        int64
	WordID    int64
	Category  string
	Text      string
	CreatedAt time.Time
}

// Mastery records whether the user has mastered a word.
// A word without a Mastery row is not mastered.
type Mastery struct {
	ID        int64
	WordID    int64
	Mastered  bool
	UpdatedAt time.Time
}

// WordRef identifies a word either by surrogate id or by its text.
type WordRef struct {
	id   int64
	text string
}

// ByID references a word by its surrogate id.
func ByID(id int64) WordRef { return WordRef{id: id} }

// ByText references a word by its stored text.
func ByText(text string) WordRef { return WordRef{text: text} }

// ID returns the surrogate id and whether the reference carries one.
func (r WordRef) ID() (int64, bool) { return r.id, r.id != 0 }

// Text returns the referenced text.
func (r WordRef) Text() string { return r.text }

func (r WordRef) String() string {
	if r.id != 0 {
		return "#" + strconv.FormatInt(r.id, 10)
	}
	return strconv.Quote(r.text)
}

// StoreStats holds row counts per table.
type StoreStats struct {
	Words       int
	Contexts    int
	Definitions int
	Mastered    int
}
