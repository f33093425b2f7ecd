package services

import (
	"context"

	"taskdesk/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder for the user.
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder together with the ids of its tasks.
	GetFolder(ctx context.Context, userID, folderID string) (*FolderDetail, error)

	// ListFolders retrieves all of the user's folders, creation time ascending.
	ListFolders(ctx context.Context, userID string) ([]models.Folder, error)

	// RenameFolder updates the folder's name.
	RenameFolder(ctx context.Context, userID, folderID string, req *RenameFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes the folder and every task in it as one atomic
	// unit. Not-found if the user owns no such folder.
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	NewName string `json:"new_name"`
}

// FolderDetail is a folder plus the ids of the tasks it contains.
type FolderDetail struct {
	models.Folder
	TaskIDs []string `json:"task_ids"`
}

// DeleteResult reports the outcome of a delete operation.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
