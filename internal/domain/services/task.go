package services

import (
	"context"
	"time"

	"taskdesk/internal/domain/models"
)

// TaskService handles task business logic. Cross-entity operations
// (creating or moving a task into a folder, searching within a folder)
// verify folder ownership before touching the task store.
type TaskService interface {
	// CreateTask creates a task inside one of the user's folders.
	CreateTask(ctx context.Context, userID string, req *CreateTaskRequest) (*models.Task, error)

	// GetTask retrieves one owned task.
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)

	// UpdateTask replaces all mutable fields of an owned task.
	UpdateTask(ctx context.Context, userID, taskID string, req *UpdateTaskRequest) (*models.Task, error)

	// DeleteTask removes one owned task. A missing task is reported in
	// the result, not as an error.
	DeleteTask(ctx context.Context, userID, taskID string) (*DeleteResult, error)

	// ToggleCompletion inverts the task's completion flag.
	ToggleCompletion(ctx context.Context, userID, taskID string) (*models.Task, error)

	// MoveTask moves a task into another owned folder, preserving every
	// other field.
	MoveTask(ctx context.Context, userID, taskID, newFolderID string) (*models.Task, error)

	// ListTasks lists the user's tasks, restricted to one folder when
	// folderID is non-nil.
	ListTasks(ctx context.Context, userID string, folderID *string) ([]models.Task, error)

	// SearchTasks runs a filtered, paginated search over the user's tasks.
	SearchTasks(ctx context.Context, opts *models.TaskSearchOptions) (*models.TaskSearchResults, error)
}

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	FolderID    string    `json:"folder_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueTime     time.Time `json:"due_time"`
	Priority    int       `json:"priority"`
}

// UpdateTaskRequest represents a full replace of a task's mutable fields.
type UpdateTaskRequest struct {
	FolderID    string    `json:"folder_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueTime     time.Time `json:"due_time"`
	Priority    int       `json:"priority"`
}

// MoveTaskRequest represents a folder move request
type MoveTaskRequest struct {
	NewFolderID string `json:"new_folder_id"`
}
