// Package client provides a transport-agnostic interface for the orderledger
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/groblegark/orderledger/internal/model"
)

// OrdersClient is the interface the CLI commands use to communicate with the
// orderledger server. It is implemented by HTTPClient.
type OrdersClient interface {
	// Orders
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error)
	GetEvents(ctx context.Context, orderID string) ([]*model.OrderEvent, error)

	// Notes
	AddNote(ctx context.Context, orderID, message string) (*NoteResult, error)
	UpdateNote(ctx context.Context, noteID int64, message string) (*NoteResult, error)
	RemoveNote(ctx context.Context, noteID int64) (*NoteResult, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateOrderRequest holds parameters for creating an order.
type CreateOrderRequest struct {
	Status    string `json:"status,omitempty"`
	ChannelID string `json:"channel_id"`
}

// ListOrdersRequest holds parameters for listing orders.
type ListOrdersRequest struct {
	Status    []string `json:"status,omitempty"`
	ChannelID string   `json:"channel_id,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// ListOrdersResponse is the response from ListOrders.
type ListOrdersResponse struct {
	Orders []*model.Order `json:"orders"`
	Total  int            `json:"total"`
}

// NoteResult is the envelope returned by note mutations.
type NoteResult struct {
	Order *model.Order      `json:"order"`
	Event *model.OrderEvent `json:"event"`
}
