package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/groblegark/orderledger/internal/model"
)

// handleCreateOrder handles POST /v1/orders.
func (s *OrdersServer) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in createOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := s.createOrder(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// handleListOrders handles GET /v1/orders.
func (s *OrdersServer) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.OrderFilter{
		ChannelID: q.Get("channel_id"),
	}

	if v := q.Get("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.OrderStatus(st))
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	orders, total, err := s.store.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	// Ensure orders is never null in JSON output.
	if orders == nil {
		orders = []*model.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
	})
}

// handleGetOrder handles GET /v1/orders/{id}.
func (s *OrdersServer) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	order, err := s.getOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// handleGetEvents handles GET /v1/orders/{id}/events.
func (s *OrdersServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	// Confirm the order exists so unknown IDs are 404, not an empty list.
	if _, err := s.store.GetOrder(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	events, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if events == nil {
		events = []*model.OrderEvent{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
