package domain

import (
	"strings"
)

// NormalizeText prepares a submitted word for lookup and storage:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses any run of whitespace (spaces, tabs, newlines) into one space
//
// Diacritics, hyphens, and apostrophes are preserved. The store itself
// never normalizes; callers run submitted text through this first.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// NormalizeContext trims a context sentence and collapses inner whitespace.
// Case is kept since contexts are quoted as the user met them.
func NormalizeContext(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
