package freedict

import "github.com/heartmarshall/wordcard-backend/internal/provider"

// apiEntry is one element of the array returned by GET /{lang}/{word}; the
// API splits a word into one entry per etymology.
type apiEntry struct {
	Word     string       `json:"word"`
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definitions  []struct {
		Definition string `json:"definition"`
	} `json:"definitions"`
}

// apiNotFound is the object body sent with a 404.
type apiNotFound struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Resolution string `json:"resolution"`
}

// mapAPIResponse concatenates the senses of every entry in response order,
// keyed by part of speech. Empty definitions are dropped.
func mapAPIResponse(entries []apiEntry) *provider.DictionaryResult {
	result := &provider.DictionaryResult{Senses: []provider.SenseResult{}}
	if len(entries) == 0 {
		return result
	}
	result.Word = entries[0].Word

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if def.Definition == "" {
					continue
				}
				result.Senses = append(result.Senses, provider.SenseResult{
					Category:   meaning.PartOfSpeech,
					Definition: def.Definition,
				})
			}
		}
	}
	return result
}
