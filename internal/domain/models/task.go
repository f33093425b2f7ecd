package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"taskdesk/internal/config"
)

// Task is a unit of work inside a folder. Task.UserID must always equal the
// owning folder's UserID; the service layer re-validates that linkage on
// every operation that accepts a foreign folder id.
type Task struct {
	ID          string    `json:"task_id"`
	FolderID    string    `json:"folder_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueTime     time.Time `json:"due_time"`
	Priority    int       `json:"priority"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the field bounds. DueTime carries no ordering constraint
// relative to creation time - overdue tasks can be created deliberately.
func (t *Task) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.UserID, validation.Required),
		validation.Field(&t.FolderID, validation.Required),
		validation.Field(&t.Title,
			validation.Required,
			validation.Length(1, config.MaxTaskTitleLength),
		),
		validation.Field(&t.Description,
			validation.Required,
			validation.Length(1, config.MaxTaskDescriptionLength),
		),
		validation.Field(&t.DueTime, validation.Required),
		validation.Field(&t.Priority,
			validation.Required,
			validation.Min(config.MinTaskPriority),
			validation.Max(config.MaxTaskPriority),
		),
	)
}
