package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/store"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Status: "bad_request", Message: err.Error()})
}

// writeError maps domain errors onto HTTP statuses.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var calcErr *scope.CalculationError
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, scope.ErrInsufficientData):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Status: "insufficient_data", Message: err.Error()})
	case errors.As(err, &calcErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: "calculation_error", Code: string(calcErr.Code), Field: calcErr.Field, Message: calcErr.Message,
		})
	case errors.As(err, &validationErrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: "invalid_scope", Message: "scope snapshot failed validation", Errors: validationErrs,
		})
	case errors.Is(err, store.ErrVersionLocked):
		writeJSON(w, http.StatusConflict, errorResponse{Status: "locked", Message: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Status: "not_found", Message: err.Error()})
	default:
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Message: "internal error"})
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
