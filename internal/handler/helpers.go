package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"taskdesk/internal/domain"
	"taskdesk/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Storage failures
// and anything unrecognized surface as a generic 500 - raw backend error
// text stays in the logs and never reaches the wire.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrStorage):
		logger.Error("storage failure", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	default:
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUserID pulls the authenticated user id injected by the auth
// middleware. An empty id means the middleware chain is misconfigured.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return "", false
	}
	return userID, true
}
