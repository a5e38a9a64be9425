package events

import (
	"context"

	"github.com/groblegark/orderledger/internal/model"
)

// Event topic constants
const (
	TopicOrderCreated      = "orders.order.created"
	TopicOrderUpdated      = "orders.order.updated"
	TopicDraftOrderUpdated = "orders.draft_order.updated"
)

// Event types

type OrderCreated struct {
	Order *model.Order `json:"order"`
}

// OrderUpdated is emitted after any committed order mutation, including note
// events. The same payload shape is published on TopicDraftOrderUpdated when
// the order is still a draft.
type OrderUpdated struct {
	Order *model.Order      `json:"order"`
	Event *model.OrderEvent `json:"event,omitempty"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
