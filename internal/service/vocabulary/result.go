package vocabulary

// RecordResult describes what RecordWord did with a submission.
type RecordResult struct {
	Word string
	// Created is false when the word already existed and only its
	// contexts were added.
	Created bool
	// Definitions is the number of definitions stored for a new word.
	Definitions int
}

// ImportResult reports a bulk import.
type ImportResult struct {
	Imported int
	Total    int
}
