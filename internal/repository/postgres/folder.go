package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/domain"
	"taskdesk/internal/domain/models"
	"taskdesk/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new folder with a store-assigned id
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.NewString()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.ID,
		folder.UserID,
		folder.Name,
		folder.CreatedAt,
	).Scan(&folder.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, lookupErr := r.existingFolderID(ctx, folder.UserID, folder.Name)
			if lookupErr != nil {
				return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists", folder.Name),
				ResourceType: "folder",
				ResourceID:   existingID,
			}
		}
		return storageError("create folder", err)
	}

	return nil
}

// GetByID retrieves a folder owned by userID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, folderID, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		return nil, storageError("get folder", err)
	}

	return &folder, nil
}

// ListByUser retrieves all of a user's folders, creation time ascending
func (r *PostgresFolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, storageError("list folders", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.Name,
			&folder.CreatedAt,
		)
		if err != nil {
			return nil, storageError("scan folder", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate folders", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// Rename updates the folder's name
func (r *PostgresFolderRepository) Rename(ctx context.Context, userID, folderID, newName string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name, created_at
	`, r.tables.Folders)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, newName, folderID, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Name,
		&folder.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			existingID, lookupErr := r.existingFolderID(ctx, userID, newName)
			if lookupErr != nil {
				return nil, fmt.Errorf("folder %q: %w", newName, domain.ErrConflict)
			}
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists", newName),
				ResourceType: "folder",
				ResourceID:   existingID,
			}
		}
		return nil, storageError("rename folder", err)
	}

	return &folder, nil
}

// Delete removes the folder row. The task cascade runs in the service
// inside the same transaction, keyed on folder_id alone.
func (r *PostgresFolderRepository) Delete(ctx context.Context, userID, folderID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID, userID)
	if err != nil {
		return storageError("delete folder", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return nil
}

// existingFolderID looks up the folder holding the unique (user_id, name)
// slot, for conflict reporting. It queries the pool directly: after a
// unique-constraint violation the ambient transaction is aborted and
// rejects further statements, and the conflicting row is committed data
// visible outside it.
func (r *PostgresFolderRepository) existingFolderID(ctx context.Context, userID, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE user_id = $1 AND name = $2
	`, r.tables.Folders)

	var id string
	if err := r.pool.QueryRow(ctx, query, userID, name).Scan(&id); err != nil {
		return "", fmt.Errorf("get existing folder id: %w", err)
	}

	return id, nil
}
