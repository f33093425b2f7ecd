package service

import (
	"context"

	"taskdesk/internal/domain/models"
	"taskdesk/internal/domain/repositories"
)

// ownershipGuard is the single place where a foreign folder id is checked
// against the requesting user. Every operation that accepts a folder id
// from outside (create task, move task, list or search within a folder)
// goes through requireFolder before the task store is touched.
//
// A folder owned by another user yields the same not-found outcome as a
// folder that does not exist.
type ownershipGuard struct {
	folderRepo repositories.FolderRepository
}

func (g *ownershipGuard) requireFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	return g.folderRepo.GetByID(ctx, userID, folderID)
}
