package model

import "time"

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	StatusDraft              OrderStatus = "draft"
	StatusUnconfirmed        OrderStatus = "unconfirmed"
	StatusUnfulfilled        OrderStatus = "unfulfilled"
	StatusPartiallyFulfilled OrderStatus = "partially_fulfilled"
	StatusFulfilled          OrderStatus = "fulfilled"
	StatusCanceled           OrderStatus = "canceled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusUnconfirmed, StatusUnfulfilled,
		StatusPartiallyFulfilled, StatusFulfilled, StatusCanceled:
		return true
	}
	return false
}

// Order is the core commerce record that note events attach to.
type Order struct {
	ID        string      `json:"id"`
	Number    int64       `json:"number"`
	Status    OrderStatus `json:"status"`
	ChannelID string      `json:"channel_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relational data -- populated by queries, not stored in the orders table.
	Events []*OrderEvent `json:"events,omitempty"`
}

// OrderFilter selects orders for listing and export.
type OrderFilter struct {
	Status    []OrderStatus
	ChannelID string
	Limit     int
	Offset    int
}
