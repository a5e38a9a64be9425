package server

import (
	"github.com/groblegark/orderledger/internal/auth"
	"github.com/groblegark/orderledger/internal/events"
	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

// OrdersServer coordinates order mutations: authorization, validation,
// transactional persistence, and post-commit event dispatch.
type OrdersServer struct {
	store      store.Store
	dispatcher *events.Dispatcher
	registry   *auth.Registry
}

// NewOrdersServer returns a new OrdersServer backed by the given store,
// dispatcher, and principal registry. A nil or empty registry disables
// authentication and authorization checks.
func NewOrdersServer(s store.Store, d *events.Dispatcher, reg *auth.Registry) *OrdersServer {
	return &OrdersServer{
		store:      s,
		dispatcher: d,
		registry:   reg,
	}
}

// inputError indicates invalid user input.
// The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

// permissionError indicates the caller lacks a required permission or channel
// scope. The HTTP layer maps this to 403.
type permissionError string

func (e permissionError) Error() string { return string(e) }

// authorize checks that the caller may mutate orders. With an empty registry
// every caller passes. The channel check runs only when channelID is known;
// callers that have not yet resolved the order pass "" to defer it.
func (s *OrdersServer) authorize(p *auth.Principal, channelID string) error {
	if s.registry.Empty() {
		return nil
	}
	if p == nil {
		return permissionError("authentication required")
	}
	if !p.Has(auth.PermManageOrders) {
		return permissionError("manage_orders permission required")
	}
	if channelID != "" && !p.CanAccessChannel(channelID) {
		return permissionError("no access to channel " + channelID)
	}
	return nil
}

// actorFor returns the audit identity for the caller, or the unattributed
// actor when auth is disabled.
func (s *OrdersServer) actorFor(p *auth.Principal) model.Actor {
	if p == nil {
		return model.Actor{}
	}
	return p.Actor()
}
