package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskdesk/internal/domain"
	"taskdesk/internal/domain/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string // substring; empty means don't check
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("%w: title is too long", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			err:        domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("folder: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unauthorized",
			err:        domain.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "conflict error carries its message",
			err: &domain.ConflictError{
				Message:      `folder named "Work" already exists`,
				ResourceType: "folder",
				ResourceID:   "f1",
			},
			wantStatus: http.StatusConflict,
			wantBody:   "already exists",
		},
		{
			name:       "storage failure is masked",
			err:        fmt.Errorf("insert: %w: connection refused", domain.ErrStorage),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
		{
			name:       "unknown error is masked",
			err:        errors.New("pq: deadlock detected"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, discardLogger(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want substring %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleErrorNeverLeaksBackendText(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, discardLogger(), fmt.Errorf("query: %w: dial tcp 10.0.0.5:5432", domain.ErrStorage))

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("backend details leaked to the client: %q", rec.Body.String())
	}
}

func TestParseSearchOptions(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, opts *models.TaskSearchOptions)
	}{
		{
			name:  "no parameters gets default limit",
			query: "",
			check: func(t *testing.T, opts *models.TaskSearchOptions) {
				if opts.Limit != 20 {
					t.Errorf("Limit = %d, want 20", opts.Limit)
				}
				if opts.Completed != nil || opts.Priority != nil || opts.DueBefore != nil {
					t.Error("absent filters must stay nil")
				}
			},
		},
		{
			name:  "explicit zero limit is preserved",
			query: "limit=0",
			check: func(t *testing.T, opts *models.TaskSearchOptions) {
				if opts.Limit != 0 {
					t.Errorf("Limit = %d, want 0", opts.Limit)
				}
			},
		},
		{
			name:  "all filters",
			query: "query=report&completed=true&priority=3&due_before=2026-09-01T12:00:00Z&folder_id=f1&offset=10&limit=5",
			check: func(t *testing.T, opts *models.TaskSearchOptions) {
				if opts.Query != "report" {
					t.Errorf("Query = %q", opts.Query)
				}
				if opts.Completed == nil || !*opts.Completed {
					t.Error("Completed not parsed")
				}
				if opts.Priority == nil || *opts.Priority != 3 {
					t.Error("Priority not parsed")
				}
				want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
				if opts.DueBefore == nil || !opts.DueBefore.Equal(want) {
					t.Error("DueBefore not parsed")
				}
				if opts.FolderID == nil || *opts.FolderID != "f1" {
					t.Error("FolderID not parsed")
				}
				if opts.Offset != 10 || opts.Limit != 5 {
					t.Errorf("pagination = %d/%d, want 10/5", opts.Offset, opts.Limit)
				}
			},
		},
		{
			name:    "bad completed",
			query:   "completed=yes-please",
			wantErr: true,
		},
		{
			name:    "bad priority",
			query:   "priority=high",
			wantErr: true,
		},
		{
			name:    "bad due_before",
			query:   "due_before=tomorrow",
			wantErr: true,
		},
		{
			name:    "bad offset",
			query:   "offset=x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/tasks/search?"+tt.query, nil)
			opts, err := parseSearchOptions(r, "u1")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSearchOptions() error: %v", err)
			}
			if opts.UserID != "u1" {
				t.Errorf("UserID = %q, want u1", opts.UserID)
			}
			if tt.check != nil {
				tt.check(t, opts)
			}
		})
	}
}
