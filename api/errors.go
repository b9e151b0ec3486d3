package api

import (
	"errors"
	"net/http"

	"backend/database"
	"backend/llm"

	"go.uber.org/zap"
)

const (
	SessionNotFound     = "Session not found"
	AutomationNotFound  = "Automation not found"
	IntegrationNotFound = "Integration not found"
)

// WriteError maps store and provider errors onto status codes. notFound is
// the text used for ErrNotFound, so a missing row and a row owned by someone
// else produce the same response.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		http.Error(w, notFound, http.StatusNotFound)
	case errors.Is(err, database.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, database.ErrDuplicateName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, llm.ErrMissingAPIKey):
		log.Error("model provider not configured")
		http.Error(w, "Model provider not configured", http.StatusInternalServerError)
	default:
		log.Error("request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
