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

type taskService struct {
	ownershipGuard
	taskRepo  repositories.TaskRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repositories.TaskRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TaskService {
	return &taskService{
		ownershipGuard: ownershipGuard{folderRepo: folderRepo},
		taskRepo:       taskRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateTask creates a task inside one of the user's folders. The folder
// ownership check and the insert share one transaction, so the task/folder
// linkage cannot go stale between them.
func (s *taskService) CreateTask(ctx context.Context, userID string, req *services.CreateTaskRequest) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		FolderID:    req.FolderID,
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		DueTime:     req.DueTime,
		Priority:    req.Priority,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.requireFolder(txCtx, userID, req.FolderID); err != nil {
			return err
		}
		return s.taskRepo.Create(txCtx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"folder_id", task.FolderID,
		"user_id", userID,
		"priority", task.Priority,
	)

	return task, nil
}

// GetTask retrieves one owned task
func (s *taskService) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, userID, taskID)
}

// UpdateTask replaces all mutable fields of an owned task
func (s *taskService) UpdateTask(ctx context.Context, userID, taskID string, req *services.UpdateTaskRequest) (*models.Task, error) {
	var task *models.Task

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.taskRepo.GetByID(txCtx, userID, taskID)
		if err != nil {
			return err
		}

		if _, err := s.requireFolder(txCtx, userID, req.FolderID); err != nil {
			return err
		}

		existing.FolderID = req.FolderID
		existing.Title = strings.TrimSpace(req.Title)
		existing.Description = strings.TrimSpace(req.Description)
		existing.DueTime = req.DueTime
		existing.Priority = req.Priority
		existing.UpdatedAt = time.Now()

		if err := existing.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		if err := s.taskRepo.Update(txCtx, existing); err != nil {
			return err
		}

		task = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "task_id", taskID, "user_id", userID)

	return task, nil
}

// DeleteTask removes one owned task. An absent task is not an error, the
// result just reports that nothing was deleted.
func (s *taskService) DeleteTask(ctx context.Context, userID, taskID string) (*services.DeleteResult, error) {
	var found bool

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		found, err = s.taskRepo.Delete(txCtx, userID, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return &services.DeleteResult{Success: false, Message: "task not found"}, nil
	}

	s.logger.Info("task deleted", "task_id", taskID, "user_id", userID)

	return &services.DeleteResult{Success: true, Message: "task deleted"}, nil
}

// ToggleCompletion inverts the completion flag. Two calls restore the
// original state.
func (s *taskService) ToggleCompletion(ctx context.Context, userID, taskID string) (*models.Task, error) {
	var task *models.Task

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		task, err = s.taskRepo.ToggleCompletion(txCtx, userID, taskID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task completion toggled",
		"task_id", taskID,
		"user_id", userID,
		"is_completed", task.IsCompleted,
	)

	return task, nil
}

// MoveTask moves a task into another owned folder. Both the task and the
// destination folder must belong to the user; failing either check is
// not-found. Every field except folder_id is preserved.
func (s *taskService) MoveTask(ctx context.Context, userID, taskID, newFolderID string) (*models.Task, error) {
	if newFolderID == "" {
		return nil, fmt.Errorf("%w: new folder id is required", domain.ErrValidation)
	}

	var task *models.Task

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.taskRepo.GetByID(txCtx, userID, taskID)
		if err != nil {
			return err
		}

		if _, err := s.requireFolder(txCtx, userID, newFolderID); err != nil {
			return err
		}

		existing.FolderID = newFolderID
		existing.UpdatedAt = time.Now()

		if err := s.taskRepo.Update(txCtx, existing); err != nil {
			return err
		}

		task = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task moved",
		"task_id", taskID,
		"user_id", userID,
		"new_folder_id", newFolderID,
	)

	return task, nil
}

// ListTasks lists the user's tasks. With a folder id it is the folder
// view; without one it is a single user-scoped query across all folders,
// not a per-folder fan-out.
func (s *taskService) ListTasks(ctx context.Context, userID string, folderID *string) ([]models.Task, error) {
	if folderID != nil {
		if _, err := s.requireFolder(ctx, userID, *folderID); err != nil {
			return nil, err
		}
		return s.taskRepo.ListByFolder(ctx, userID, *folderID)
	}
	return s.taskRepo.ListByUser(ctx, userID)
}

// SearchTasks runs a filtered, paginated search over the user's tasks
func (s *taskService) SearchTasks(ctx context.Context, opts *models.TaskSearchOptions) (*models.TaskSearchResults, error) {
	if opts.FolderID != nil {
		if _, err := s.requireFolder(ctx, opts.UserID, *opts.FolderID); err != nil {
			return nil, err
		}
	}
	return s.taskRepo.Search(ctx, opts)
}
