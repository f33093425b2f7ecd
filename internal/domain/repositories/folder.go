package repositories

import (
	"context"

	"taskdesk/internal/domain/models"
)

// FolderRepository defines data access operations for folders. Every
// operation is scoped by user id; a folder owned by someone else behaves
// exactly like a nonexistent one.
type FolderRepository interface {
	// Create inserts a new folder and assigns its ID and CreatedAt.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder owned by userID.
	GetByID(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// ListByUser retrieves all of a user's folders ordered by creation
	// time ascending.
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// Rename updates the folder's name.
	Rename(ctx context.Context, userID, folderID, newName string) (*models.Folder, error)

	// Delete removes the folder. The task cascade is handled by the
	// service inside the same transaction.
	Delete(ctx context.Context, userID, folderID string) error
}
