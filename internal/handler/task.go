package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"taskdesk/internal/config"
	"taskdesk/internal/domain/models"
	"taskdesk/internal/domain/services"
	"taskdesk/internal/httputil"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// taskListResponse wraps the task collection
type taskListResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// CreateTask creates a new task in one of the user's folders
// POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, task)
}

// GetTask retrieves one task
// GET /api/tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// UpdateTask replaces all mutable fields of a task
// PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	var req services.UpdateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// DeleteTask removes one task. Deleting an absent task reports
// success=false rather than an error status.
// DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	result, err := h.taskService.DeleteTask(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ToggleTaskCompletion inverts a task's completion flag
// PUT /api/tasks/{id}/toggle
func (h *TaskHandler) ToggleTaskCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	task, err := h.taskService.ToggleCompletion(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// MoveTask moves a task to another folder
// PUT /api/tasks/{id}/move
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	var req services.MoveTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.MoveTask(r.Context(), userID, id, req.NewFolderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// ListTasks lists the user's tasks, optionally restricted to one folder
// GET /api/tasks?folder_id=...
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var folderID *string
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		folderID = &raw
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, taskListResponse{Tasks: tasks})
}

// ListFolderTasks lists all tasks inside a folder the user owns
// GET /api/folders/{id}/tasks
func (h *TaskHandler) ListFolderTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	folderID := r.PathValue("id")

	tasks, err := h.taskService.ListTasks(r.Context(), userID, &folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, taskListResponse{Tasks: tasks})
}

// SearchTasks runs a filtered, paginated search
// GET /api/tasks/search?query=&completed=&priority=&due_before=&folder_id=&offset=&limit=
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	opts, err := parseSearchOptions(r, userID)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.taskService.SearchTasks(r.Context(), opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// parseSearchOptions reads the search filters from query parameters.
// Absent parameters stay nil - absent is not the same as a zero value
// (completed=false filters; no completed parameter does not).
func parseSearchOptions(r *http.Request, userID string) (*models.TaskSearchOptions, error) {
	q := r.URL.Query()

	opts := &models.TaskSearchOptions{
		UserID: userID,
		Query:  q.Get("query"),
		Limit:  config.DefaultSearchLimit,
	}

	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("completed must be a boolean")
		}
		opts.Completed = &completed
	}

	if raw := q.Get("priority"); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("priority must be an integer")
		}
		opts.Priority = &priority
	}

	if raw := q.Get("due_before"); raw != "" {
		dueBefore, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("due_before must be an RFC 3339 timestamp")
		}
		opts.DueBefore = &dueBefore
	}

	if raw := q.Get("folder_id"); raw != "" {
		opts.FolderID = &raw
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("offset must be an integer")
		}
		opts.Offset = offset
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("limit must be an integer")
		}
		opts.Limit = limit
	}

	return opts, nil
}
