package domain

import "time"

// LookupStatus represents the processing state of a queued submission.
type LookupStatus string

const (
	LookupStatusPending    LookupStatus = "pending"
	LookupStatusProcessing LookupStatus = "processing"
	LookupStatusDone       LookupStatus = "done"
	LookupStatusFailed     LookupStatus = "failed"
)

func (s LookupStatus) IsValid() bool {
	switch s {
	case LookupStatusPending, LookupStatusProcessing, LookupStatusDone, LookupStatusFailed:
		return true
	}
	return false
}

// LookupItem is a word submission waiting for its dictionary lookup.
type LookupItem struct {
	ID           int64
	Word         string
	Context      string
	Status       LookupStatus
	Attempts     int
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LookupQueueStats holds aggregate counts by status.
type LookupQueueStats struct {
	Pending    int
	Processing int
	Done       int
	Failed     int
	Total      int
}
