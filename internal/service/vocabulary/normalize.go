package vocabulary

import (
	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
)

// NormalizeRecord builds the canonical record for a lookup result. The word
// is taken from the result when it reports one and falls back to the
// requested text. Senses are grouped by category in first-seen order; a nil
// result yields undefined definitions.
func NormalizeRecord(requested string, contexts []string, res *provider.DictionaryResult) domain.Record {
	rec := domain.Record{
		Word:     domain.NormalizeText(requested),
		Contexts: make([]string, 0, len(contexts)),
	}
	for _, c := range contexts {
		if c = domain.NormalizeContext(c); c != "" {
			rec.Contexts = append(rec.Contexts, c)
		}
	}

	if res == nil {
		rec.Definitions = domain.NewUndefinedDefinitions()
		return rec
	}
	if w := domain.NormalizeText(res.Word); w != "" {
		rec.Word = w
	}
	for _, s := range res.Senses {
		if s.Definition == "" {
			continue
		}
		rec.Definitions.Add(s.Category, s.Definition)
	}
	return rec
}
