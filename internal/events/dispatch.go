package events

import (
	"context"
	"log/slog"

	"github.com/groblegark/orderledger/internal/model"
)

// TopicForStatus picks the update topic for an order. Draft orders get their
// own topic so draft-only consumers don't have to filter the main stream.
func TopicForStatus(status model.OrderStatus) string {
	if status == model.StatusDraft {
		return TopicDraftOrderUpdated
	}
	return TopicOrderUpdated
}

// Dispatcher publishes order mutations to the event bus. Delivery is best
// effort: failures are logged, never surfaced to the caller, so a broker
// outage cannot fail a request whose transaction already committed.
type Dispatcher struct {
	publisher Publisher
}

func NewDispatcher(publisher Publisher) *Dispatcher {
	return &Dispatcher{publisher: publisher}
}

// OrderCreated announces a newly created order.
func (d *Dispatcher) OrderCreated(ctx context.Context, order *model.Order) {
	d.publish(ctx, TopicOrderCreated, order.ID, OrderCreated{Order: order})
}

// OrderUpdated announces a committed mutation on an order. The topic is keyed
// by the order's current status.
func (d *Dispatcher) OrderUpdated(ctx context.Context, order *model.Order, event *model.OrderEvent) {
	d.publish(ctx, TopicForStatus(order.Status), order.ID, OrderUpdated{Order: order, Event: event})
}

func (d *Dispatcher) publish(ctx context.Context, topic, orderID string, event any) {
	if err := d.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "order_id", orderID, "error", err)
	}
}

func (d *Dispatcher) Close() error {
	return d.publisher.Close()
}
