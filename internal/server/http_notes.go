package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// handleAddNote handles POST /v1/orders/{id}/notes.
func (s *OrdersServer) handleAddNote(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.addNote(r.Context(), orderID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// handleUpdateNote handles PATCH /v1/notes/{id}.
func (s *OrdersServer) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	eventID, ok := notePathID(w, r)
	if !ok {
		return
	}

	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.updateNote(r.Context(), eventID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleRemoveNote handles DELETE /v1/notes/{id}.
func (s *OrdersServer) handleRemoveNote(w http.ResponseWriter, r *http.Request) {
	eventID, ok := notePathID(w, r)
	if !ok {
		return
	}

	result, err := s.removeNote(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// notePathID parses the numeric note event ID from the request path.
func notePathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return 0, false
	}
	return id, true
}
