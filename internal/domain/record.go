package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UndefinedDefinitions is the wire sentinel for a record whose definitions
// were never fetched.
const UndefinedDefinitions = "Undefined"

// Record is the canonical exchange shape of a word with everything attached
// to it. It is what the dictionary lookup produces, what migrate consumes and
// what dump emits.
type Record struct {
	Word        string      `json:"word"`
	Mastered    bool        `json:"mastered"`
	Contexts    []string    `json:"context"`
	Definitions Definitions `json:"definitions"`
}

// Definitions maps a category (part of speech) to its definition texts,
// keeping categories in first-seen order. The zero value is an empty,
// defined set.
type Definitions struct {
	undefined bool
	groups    *orderedmap.OrderedMap[string, []string]
}

// NewUndefinedDefinitions returns the "never fetched" sentinel.
func NewUndefinedDefinitions() Definitions {
	return Definitions{undefined: true}
}

// IsUndefined reports whether the set is the "never fetched" sentinel.
func (d Definitions) IsUndefined() bool { return d.undefined }

// Add appends text under category, creating the category on first use.
func (d *Definitions) Add(category, text string) {
	if d.groups == nil {
		d.groups = orderedmap.New[string, []string]()
	}
	d.undefined = false
	texts, _ := d.groups.Get(category)
	d.groups.Set(category, append(texts, text))
}

// Categories lists categories in first-seen order.
func (d Definitions) Categories() []string {
	if d.groups == nil {
		return []string{}
	}
	out := make([]string, 0, d.groups.Len())
	for pair := d.groups.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Get returns the texts stored under category.
func (d Definitions) Get(category string) []string {
	if d.groups == nil {
		return nil
	}
	texts, _ := d.groups.Get(category)
	return texts
}

// Len returns the total number of definition texts across categories.
func (d Definitions) Len() int {
	if d.groups == nil {
		return 0
	}
	n := 0
	for pair := d.groups.Oldest(); pair != nil; pair = pair.Next() {
		n += len(pair.Value)
	}
	return n
}

// Each calls fn for every (category, text) pair in order.
func (d Definitions) Each(fn func(category, text string)) {
	if d.groups == nil {
		return
	}
	for pair := d.groups.Oldest(); pair != nil; pair = pair.Next() {
		for _, text := range pair.Value {
			fn(pair.Key, text)
		}
	}
}

func (d Definitions) MarshalJSON() ([]byte, error) {
	if d.undefined {
		return json.Marshal(UndefinedDefinitions)
	}
	if d.groups == nil {
		return []byte("{}"), nil
	}
	return d.groups.MarshalJSON()
}

// UnmarshalJSON accepts either an object of category arrays or a bare string.
// Any string decodes to the undefined sentinel.
func (d *Definitions) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*d = Definitions{}
		return nil
	case data[0] == '"':
		*d = NewUndefinedDefinitions()
		return nil
	case data[0] != '{':
		return fmt.Errorf("definitions: expected object or string, got %s", data)
	}

	groups := orderedmap.New[string, []string]()
	if err := groups.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("definitions: %w", err)
	}
	*d = Definitions{groups: groups}
	return nil
}
