package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/domain/models"
	"taskdesk/internal/domain/repositories"
	"taskdesk/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	taskRepo   repositories.TaskRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	taskRepo repositories.TaskRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		taskRepo:   taskRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder for the user
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	folder := &models.Folder{
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now(),
	}

	if err := folder.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"folder_id", folder.ID,
		"user_id", userID,
		"name", folder.Name,
	)

	return folder, nil
}

// GetFolder retrieves a folder together with the ids of its tasks
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*services.FolderDetail, error) {
	folder, err := s.folderRepo.GetByID(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	taskIDs, err := s.taskRepo.ListIDsByFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	return &services.FolderDetail{
		Folder:  *folder,
		TaskIDs: taskIDs,
	}, nil
}

// ListFolders retrieves all of the user's folders, creation time ascending
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListByUser(ctx, userID)
}

// RenameFolder updates the folder's name
func (s *folderService) RenameFolder(ctx context.Context, userID, folderID string, req *services.RenameFolderRequest) (*models.Folder, error) {
	newName := strings.TrimSpace(req.NewName)

	check := &models.Folder{UserID: userID, Name: newName}
	if err := check.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.Rename(txCtx, userID, folderID, newName)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"folder_id", folderID,
		"user_id", userID,
		"name", newName,
	)

	return folder, nil
}

// DeleteFolder deletes the folder and every task referencing it as one
// atomic unit. A concurrent reader sees either the folder with all its
// tasks or neither.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	var removed int64

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// Ownership-scoped existence check: a foreign folder rolls back
		// here before any task rows are touched.
		if _, err := s.folderRepo.GetByID(txCtx, userID, folderID); err != nil {
			return err
		}

		// Cascade keyed on folder_id alone, not on each task's own
		// user_id, so corrupted ownership linkage cannot strand rows.
		var err error
		removed, err = s.taskRepo.DeleteByFolder(txCtx, folderID)
		if err != nil {
			return err
		}

		return s.folderRepo.Delete(txCtx, userID, folderID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"folder_id", folderID,
		"user_id", userID,
		"tasks_removed", removed,
	)

	return nil
}
