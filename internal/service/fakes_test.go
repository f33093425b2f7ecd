package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/domain/models"
	"taskdesk/internal/domain/repositories"
)

// memStore is a shared in-memory backing store for the fake repositories.
// Both fakes point at the same store so cross-entity behavior (the delete
// cascade, ownership checks) can be exercised end to end.
type memStore struct {
	folders map[string]models.Folder
	tasks   map[string]models.Task
	seq     int
}

func newMemStore() *memStore {
	return &memStore{
		folders: make(map[string]models.Folder),
		tasks:   make(map[string]models.Task),
	}
}

func (s *memStore) nextID(kind string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", kind, s.seq)
}

func (s *memStore) snapshot() (map[string]models.Folder, map[string]models.Task) {
	folders := make(map[string]models.Folder, len(s.folders))
	for k, v := range s.folders {
		folders[k] = v
	}
	tasks := make(map[string]models.Task, len(s.tasks))
	for k, v := range s.tasks {
		tasks[k] = v
	}
	return folders, tasks
}

// memTxManager mimics transactional semantics: on error the store is
// restored to its pre-transaction state.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	folders, tasks := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.folders = folders
		m.store.tasks = tasks
		return err
	}
	return nil
}

type memFolderRepo struct {
	store *memStore
	// forced errors per method name, for failure-path tests
	failOn map[string]error
}

func (r *memFolderRepo) fail(method string) error {
	if r.failOn == nil {
		return nil
	}
	return r.failOn[method]
}

func (r *memFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if err := r.fail("Create"); err != nil {
		return err
	}
	for id, f := range r.store.folders {
		if f.UserID == folder.UserID && f.Name == folder.Name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder named %q already exists", folder.Name),
				ResourceType: "folder",
				ResourceID:   id,
			}
		}
	}
	folder.ID = r.store.nextID("folder")
	r.store.folders[folder.ID] = *folder
	return nil
}

func (r *memFolderRepo) GetByID(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if err := r.fail("GetByID"); err != nil {
		return nil, err
	}
	f, ok := r.store.folders[folderID]
	if !ok || f.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := f
	return &out, nil
}

func (r *memFolderRepo) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, f := range r.store.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memFolderRepo) Rename(ctx context.Context, userID, folderID, newName string) (*models.Folder, error) {
	f, ok := r.store.folders[folderID]
	if !ok || f.UserID != userID {
		return nil, domain.ErrNotFound
	}
	for id, other := range r.store.folders {
		if id != folderID && other.UserID == userID && other.Name == newName {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("folder named %q already exists", newName),
				ResourceType: "folder",
				ResourceID:   id,
			}
		}
	}
	f.Name = newName
	r.store.folders[folderID] = f
	out := f
	return &out, nil
}

func (r *memFolderRepo) Delete(ctx context.Context, userID, folderID string) error {
	if err := r.fail("Delete"); err != nil {
		return err
	}
	f, ok := r.store.folders[folderID]
	if !ok || f.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.store.folders, folderID)
	return nil
}

type memTaskRepo struct {
	store  *memStore
	failOn map[string]error
}

func (r *memTaskRepo) fail(method string) error {
	if r.failOn == nil {
		return nil
	}
	return r.failOn[method]
}

func (r *memTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if err := r.fail("Create"); err != nil {
		return err
	}
	if _, ok := r.store.folders[task.FolderID]; !ok {
		return fmt.Errorf("folder: %w", domain.ErrNotFound)
	}
	task.ID = r.store.nextID("task")
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	t, ok := r.store.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := t
	return &out, nil
}

func sortTasks(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		return tasks[i].DueTime.Before(tasks[j].DueTime)
	})
}

func (r *memTaskRepo) ListByFolder(ctx context.Context, userID, folderID string) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range r.store.tasks {
		if t.UserID == userID && t.FolderID == folderID {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (r *memTaskRepo) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range r.store.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (r *memTaskRepo) ListIDsByFolder(ctx context.Context, userID, folderID string) ([]string, error) {
	tasks, err := r.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if err := r.fail("Update"); err != nil {
		return err
	}
	existing, ok := r.store.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrNotFound
	}
	if _, ok := r.store.folders[task.FolderID]; !ok {
		return fmt.Errorf("folder: %w", domain.ErrNotFound)
	}
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) ToggleCompletion(ctx context.Context, userID, taskID string, updatedAt time.Time) (*models.Task, error) {
	t, ok := r.store.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = updatedAt
	r.store.tasks[taskID] = t
	out := t
	return &out, nil
}

func (r *memTaskRepo) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	t, ok := r.store.tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.store.tasks, taskID)
	return true, nil
}

func (r *memTaskRepo) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	if err := r.fail("DeleteByFolder"); err != nil {
		return 0, err
	}
	var n int64
	for id, t := range r.store.tasks {
		if t.FolderID == folderID {
			delete(r.store.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) Search(ctx context.Context, opts *models.TaskSearchOptions) (*models.TaskSearchResults, error) {
	o := *opts
	o.ApplyDefaults()
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	matched := []models.Task{}
	for _, t := range r.store.tasks {
		if t.UserID != o.UserID {
			continue
		}
		if o.Query != "" {
			q := strings.ToLower(o.Query)
			if !strings.Contains(strings.ToLower(t.Title), q) &&
				!strings.Contains(strings.ToLower(t.Description), q) {
				continue
			}
		}
		if o.Completed != nil && t.IsCompleted != *o.Completed {
			continue
		}
		if o.Priority != nil && t.Priority != *o.Priority {
			continue
		}
		if o.DueBefore != nil && t.DueTime.After(*o.DueBefore) {
			continue
		}
		if o.FolderID != nil && t.FolderID != *o.FolderID {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DueTime.Before(matched[j].DueTime) })

	total := len(matched)
	page := []models.Task{}
	if o.Limit > 0 {
		start := o.Offset
		if start > total {
			start = total
		}
		end := start + o.Limit
		if end > total {
			end = total
		}
		page = append(page, matched[start:end]...)
	}

	return &models.TaskSearchResults{
		Tasks:      page,
		TotalCount: total,
		Offset:     o.Offset,
		Limit:      o.Limit,
	}, nil
}

// testEnv wires the fakes into real service implementations.
type testEnv struct {
	store      *memStore
	folderRepo *memFolderRepo
	taskRepo   *memTaskRepo
}

func newTestEnv() *testEnv {
	store := newMemStore()
	return &testEnv{
		store:      store,
		folderRepo: &memFolderRepo{store: store},
		taskRepo:   &memTaskRepo{store: store},
	}
}

func (e *testEnv) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *testEnv) folderService() *folderService {
	return &folderService{
		folderRepo: e.folderRepo,
		taskRepo:   e.taskRepo,
		txManager:  &memTxManager{store: e.store},
		logger:     e.logger(),
	}
}

func (e *testEnv) taskService() *taskService {
	return &taskService{
		ownershipGuard: ownershipGuard{folderRepo: e.folderRepo},
		taskRepo:       e.taskRepo,
		txManager:      &memTxManager{store: e.store},
		logger:         e.logger(),
	}
}

// seedFolder inserts a folder directly into the store.
func (e *testEnv) seedFolder(userID, name string) string {
	id := e.store.nextID("folder")
	e.store.folders[id] = models.Folder{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	return id
}

// seedTask inserts a task directly into the store.
func (e *testEnv) seedTask(userID, folderID, title string, priority int, due time.Time) string {
	id := e.store.nextID("task")
	now := time.Now()
	e.store.tasks[id] = models.Task{
		ID:        id,
		FolderID:  folderID,
		UserID:    userID,
		Title:     title,
		Priority:  priority,
		DueTime:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id
}
