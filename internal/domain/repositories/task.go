package repositories

import (
	"context"
	"time"

	"taskdesk/internal/domain/models"
)

// TaskRepository defines data access operations for tasks, all scoped by
// user id. The repository is a low-level primitive: it does not verify
// that a folder belongs to the user - that check lives in the service.
//
// Two orderings are part of the public contract and are intentionally
// different: ListByFolder returns priority descending with due time
// ascending as tie-break (a "what next" view), while Search returns due
// time ascending (a deadline view).
type TaskRepository interface {
	// Create inserts a new task and assigns its ID, CreatedAt and
	// UpdatedAt (equal on creation).
	Create(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task owned by userID.
	GetByID(ctx context.Context, userID, taskID string) (*models.Task, error)

	// ListByFolder retrieves the user's tasks in one folder, ordered by
	// priority descending then due time ascending.
	ListByFolder(ctx context.Context, userID, folderID string) ([]models.Task, error)

	// ListByUser retrieves all of the user's tasks across folders with
	// the same ordering as ListByFolder.
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)

	// ListIDsByFolder retrieves the ids of the user's tasks in one
	// folder, in ListByFolder order.
	ListIDsByFolder(ctx context.Context, userID, folderID string) ([]string, error)

	// Update replaces all mutable fields and bumps UpdatedAt.
	Update(ctx context.Context, task *models.Task) error

	// ToggleCompletion flips is_completed and stamps the given UpdatedAt.
	// Not idempotent: each call inverts the current state.
	ToggleCompletion(ctx context.Context, userID, taskID string, updatedAt time.Time) (*models.Task, error)

	// Delete removes one task. Returns false when no owned task matched;
	// "already deleted" is not an error condition.
	Delete(ctx context.Context, userID, taskID string) (bool, error)

	// DeleteByFolder removes every task referencing folderID, regardless
	// of each task's own user_id field. The cascade is keyed on folder_id
	// alone as a defense against corrupted ownership linkage. Returns the
	// number of tasks removed.
	DeleteByFolder(ctx context.Context, folderID string) (int64, error)

	// Search retrieves tasks matching all supplied filters, ordered by
	// due time ascending, paginated, with the pre-pagination total count.
	Search(ctx context.Context, opts *models.TaskSearchOptions) (*models.TaskSearchResults, error)
}
