package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When the registry has principals, requests (except GET /v1/health) must
// include an Authorization: Bearer <token> header matching a known principal.
func (s *OrdersServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/orders", s.handleCreateOrder)
	mux.HandleFunc("GET /v1/orders", s.handleListOrders)
	mux.HandleFunc("GET /v1/orders/{id}", s.handleGetOrder)
	mux.HandleFunc("GET /v1/orders/{id}/events", s.handleGetEvents)
	mux.HandleFunc("POST /v1/orders/{id}/notes", s.handleAddNote)
	mux.HandleFunc("PATCH /v1/notes/{id}", s.handleUpdateNote)
	mux.HandleFunc("DELETE /v1/notes/{id}", s.handleRemoveNote)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return s.authMiddleware(mux)
}

// handleHealth handles GET /v1/health.
func (s *OrdersServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// apiError is the JSON shape of every error response.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// Error codes surfaced to clients alongside the HTTP status.
const (
	codePermissionDenied = "PERMISSION_DENIED"
	codeNotFound         = "NOT_FOUND"
	codeAlreadyRemoved   = "ALREADY_REMOVED"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response without a machine-readable code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Error: message})
}

// writeDomainError maps orchestration errors onto HTTP statuses and the
// {error, code, field} body.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	var pe permissionError
	var ie inputError
	switch {
	case errors.As(err, &ve):
		fe := ve.Errors[0]
		writeJSON(w, http.StatusBadRequest, apiError{Error: fe.Message, Code: fe.Code, Field: fe.Field})
	case errors.As(err, &pe):
		writeJSON(w, http.StatusForbidden, apiError{Error: pe.Error(), Code: codePermissionDenied})
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, apiError{Error: "not found", Code: codeNotFound, Field: "id"})
	case errors.Is(err, store.ErrAlreadyRemoved):
		writeJSON(w, http.StatusConflict, apiError{Error: err.Error(), Code: codeAlreadyRemoved, Field: "id"})
	case errors.As(err, &ie):
		writeJSON(w, http.StatusBadRequest, apiError{Error: ie.Error(), Code: model.CodeInvalid})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
