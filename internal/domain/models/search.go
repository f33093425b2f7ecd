package models

import (
	"fmt"
	"time"

	"taskdesk/internal/config"
)

// TaskSearchOptions holds the filters for a task search. All supplied
// filters are combined with AND semantics; nil pointer fields are absent,
// which is distinct from a zero value (completed=false is a real filter).
type TaskSearchOptions struct {
	UserID string

	// Query matches a case-insensitive substring of title OR description.
	Query string

	Completed *bool
	Priority  *int
	DueBefore *time.Time // selects due_time <= threshold

	// FolderID restricts the search to one folder. Folder ownership is
	// checked by the service before the store sees this option.
	FolderID *string

	// Offset is zero-based. A Limit of 0 returns an empty page together
	// with the total match count, so callers can size pages cheaply.
	Offset int
	Limit  int
}

// TaskSearchResults pairs one page of matches with the total count of
// matches before pagination.
type TaskSearchResults struct {
	Tasks      []Task `json:"tasks"`
	TotalCount int    `json:"total_count"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

// ApplyDefaults normalizes out-of-range pagination values.
func (o *TaskSearchOptions) ApplyDefaults() {
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit < 0 {
		o.Limit = config.DefaultSearchLimit
	}
	if o.Limit > config.MaxSearchLimit {
		o.Limit = config.MaxSearchLimit
	}
}

// Validate checks the option bounds.
func (o *TaskSearchOptions) Validate() error {
	if o.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if o.Priority != nil && (*o.Priority < config.MinTaskPriority || *o.Priority > config.MaxTaskPriority) {
		return fmt.Errorf("priority must be between %d and %d", config.MinTaskPriority, config.MaxTaskPriority)
	}
	if o.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}
