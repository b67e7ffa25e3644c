package provider

// DictionaryResult is the structured result from a dictionary API provider.
type DictionaryResult struct {
	Word   string
	Senses []SenseResult
}

// SenseResult is a single definition from an external dictionary.
// Category is the part of speech (FreeDictionary) or lexical category
// (Oxford) and may be empty when the source does not report one.
type SenseResult struct {
	Category   string
	Definition string
}
