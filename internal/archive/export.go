package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	OrderCount int       `json:"order_count"`
	EventCount int       `json:"event_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all orders and their event logs from the store as JSONL
// to w. Orders are sorted by ID; each order's events follow it in log order.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	orders, _, err := s.ListOrders(ctx, model.OrderFilter{})
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID < orders[j].ID
	})

	eventCount := 0
	eventsByOrder := make(map[string][]*model.OrderEvent, len(orders))
	for _, o := range orders {
		events, err := s.GetEvents(ctx, o.ID)
		if err != nil {
			return fmt.Errorf("get events for %s: %w", o.ID, err)
		}
		eventsByOrder[o.ID] = events
		eventCount += len(events)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    "1",
		Type:       "header",
		Timestamp:  time.Now().UTC(),
		OrderCount: len(orders),
		EventCount: eventCount,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, o := range orders {
		if err := enc.Encode(record{Type: "order", Data: o}); err != nil {
			return fmt.Errorf("encode order %s: %w", o.ID, err)
		}
		for _, e := range eventsByOrder[o.ID] {
			if err := enc.Encode(record{Type: "event", Data: e}); err != nil {
				return fmt.Errorf("encode event %d: %w", e.ID, err)
			}
		}
	}

	return nil
}
