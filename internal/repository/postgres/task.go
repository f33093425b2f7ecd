package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/domain"
	"taskdesk/internal/domain/models"
	"taskdesk/internal/domain/repositories"
)

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const taskColumns = "id, folder_id, user_id, title, description, due_time, priority, is_completed, created_at, updated_at"

func scanTask(row pgx.Row, task *models.Task) error {
	return row.Scan(
		&task.ID,
		&task.FolderID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueTime,
		&task.Priority,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
}

// Create inserts a new task with a store-assigned id. CreatedAt and
// UpdatedAt are written as provided; the service sets them equal.
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = uuid.NewString()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, user_id, title, description, due_time, priority, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		task.ID,
		task.FolderID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueTime,
		task.Priority,
		task.IsCompleted,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", task.FolderID, domain.ErrNotFound)
		}
		return storageError("create task", err)
	}

	return nil
}

// GetByID retrieves a task owned by userID
func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, taskColumns, r.tables.Tasks)

	var task models.Task
	executor := GetExecutor(ctx, r.pool)
	err := scanTask(executor.QueryRow(ctx, query, taskID, userID), &task)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
		}
		return nil, storageError("get task", err)
	}

	return &task, nil
}

// ListByFolder retrieves the user's tasks in one folder: highest priority
// first, earliest deadline as tie-break.
func (r *PostgresTaskRepository) ListByFolder(ctx context.Context, userID, folderID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY priority DESC, due_time ASC
	`, taskColumns, r.tables.Tasks)

	return r.queryTasks(ctx, "list tasks in folder", query, userID, folderID)
}

// ListByUser retrieves all of the user's tasks across folders, same
// ordering as ListByFolder.
func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY priority DESC, due_time ASC
	`, taskColumns, r.tables.Tasks)

	return r.queryTasks(ctx, "list tasks", query, userID)
}

// ListIDsByFolder retrieves the ids of the user's tasks in one folder
func (r *PostgresTaskRepository) ListIDsByFolder(ctx context.Context, userID, folderID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY priority DESC, due_time ASC
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, folderID)
	if err != nil {
		return nil, storageError("list task ids", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageError("scan task id", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate task ids", err)
	}

	return ids, nil
}

// Update replaces all mutable fields. UpdatedAt is written as provided by
// the service and never moves backwards.
func (r *PostgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, title = $2, description = $3, due_time = $4, priority = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		task.FolderID,
		task.Title,
		task.Description,
		task.DueTime,
		task.Priority,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", task.FolderID, domain.ErrNotFound)
		}
		return storageError("update task", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrNotFound)
	}

	return nil
}

// ToggleCompletion flips is_completed in place, stamping the timestamp
// supplied by the service. Deliberately not idempotent: each call inverts
// the current state.
func (r *PostgresTaskRepository) ToggleCompletion(ctx context.Context, userID, taskID string, updatedAt time.Time) (*models.Task, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_completed = NOT is_completed, updated_at = $1
		WHERE id = $2 AND user_id = $3
		RETURNING %s
	`, r.tables.Tasks, taskColumns)

	var task models.Task
	executor := GetExecutor(ctx, r.pool)
	err := scanTask(executor.QueryRow(ctx, query, updatedAt, taskID, userID), &task)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
		}
		return nil, storageError("toggle task completion", err)
	}

	return &task, nil
}

// Delete removes one owned task, reporting whether anything matched
func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, taskID, userID)
	if err != nil {
		return false, storageError("delete task", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteByFolder removes every task referencing folderID. The cascade is
// keyed on folder_id alone - a task whose user_id no longer matches its
// folder's owner is removed with the rest.
func (r *PostgresTaskRepository) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = $1
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID)
	if err != nil {
		return 0, storageError("delete folder tasks", err)
	}

	return result.RowsAffected(), nil
}

// Search retrieves tasks matching all supplied filters, due time
// ascending, with the pre-pagination total count.
func (r *PostgresTaskRepository) Search(ctx context.Context, opts *models.TaskSearchOptions) (*models.TaskSearchResults, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	whereClause, args := buildTaskSearchWhere(opts)
	executor := GetExecutor(ctx, r.pool)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE %s
	`, r.tables.Tasks, whereClause)

	var total int
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, storageError("count task matches", err)
	}

	tasks := []models.Task{}
	if opts.Limit > 0 {
		pageQuery := fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE %s
			ORDER BY due_time ASC
			LIMIT $%d OFFSET $%d
		`, taskColumns, r.tables.Tasks, whereClause, len(args)+1, len(args)+2)

		pageArgs := append(args, opts.Limit, opts.Offset)
		page, err := r.queryTasks(ctx, "search tasks", pageQuery, pageArgs...)
		if err != nil {
			return nil, err
		}
		tasks = page
	}

	return &models.TaskSearchResults{
		Tasks:      tasks,
		TotalCount: total,
		Offset:     opts.Offset,
		Limit:      opts.Limit,
	}, nil
}

// buildTaskSearchWhere assembles the AND-composed filter conditions and
// their positional arguments.
func buildTaskSearchWhere(opts *models.TaskSearchOptions) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{opts.UserID}

	next := func() int { return len(args) + 1 }

	if opts.Query != "" {
		n := next()
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
		args = append(args, opts.Query)
	}
	if opts.Completed != nil {
		conditions = append(conditions, fmt.Sprintf("is_completed = $%d", next()))
		args = append(args, *opts.Completed)
	}
	if opts.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", next()))
		args = append(args, *opts.Priority)
	}
	if opts.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("due_time <= $%d", next()))
		args = append(args, *opts.DueBefore)
	}
	if opts.FolderID != nil {
		conditions = append(conditions, fmt.Sprintf("folder_id = $%d", next()))
		args = append(args, *opts.FolderID)
	}

	return strings.Join(conditions, " AND "), args
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, op, query string, args ...interface{}) ([]models.Task, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, storageError("scan task", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}

	return tasks, nil
}
