package vocabulary

import (
	"unicode/utf8"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

const (
	maxWordLength    = 100
	maxContextLength = 2000
	maxContexts      = 20
)

// RecordInput is a word submission: the word plus the sentences it was met in.
type RecordInput struct {
	Word     string
	Contexts []string
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	word := domain.NormalizeText(i.Word)
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if utf8.RuneCountInString(word) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "word", Message: "max 100 characters"})
	}

	if len(i.Contexts) > maxContexts {
		errs = append(errs, domain.FieldError{Field: "context", Message: "max 20 entries"})
	}
	for _, c := range i.Contexts {
		if utf8.RuneCountInString(c) > maxContextLength {
			errs = append(errs, domain.FieldError{Field: "context", Message: "max 2000 characters"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalized returns the input with the word and contexts cleaned up and
// empty contexts dropped.
func (i RecordInput) normalized() RecordInput {
	out := RecordInput{Word: domain.NormalizeText(i.Word), Contexts: make([]string, 0, len(i.Contexts))}
	for _, c := range i.Contexts {
		if c = domain.NormalizeContext(c); c != "" {
			out.Contexts = append(out.Contexts, c)
		}
	}
	return out
}

func validateWord(word string) (string, error) {
	w := domain.NormalizeText(word)
	if w == "" {
		return "", domain.NewValidationError("word", "required")
	}
	return w, nil
}
