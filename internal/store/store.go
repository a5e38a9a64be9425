package store

import (
	"context"
	"errors"

	"github.com/groblegark/orderledger/internal/model"
)

// ErrAlreadyRemoved is returned when a note_removed tombstone already exists
// for the targeted note_added event.
var ErrAlreadyRemoved = errors.New("note already removed")

// Store defines the persistence interface for orders and their event log.
// Lookups that miss return sql.ErrNoRows.
type Store interface {
	// Orders
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, int, error) // returns orders, total count, error

	// Events
	RecordEvent(ctx context.Context, event *model.OrderEvent) error
	GetEvent(ctx context.Context, id int64) (*model.OrderEvent, error)
	// GetNoteEvent looks up an event by ID filtered to kind=note_added.
	// A miss covers both "wrong id" and "id refers to a different event kind".
	GetNoteEvent(ctx context.Context, id int64) (*model.OrderEvent, error)
	// UpdateEventParameters persists the event's current parameters payload.
	UpdateEventParameters(ctx context.Context, event *model.OrderEvent) error
	GetEvents(ctx context.Context, orderID string) ([]*model.OrderEvent, error)
	// HasRemovalFor reports whether a note_removed tombstone references the
	// given note_added event.
	HasRemovalFor(ctx context.Context, relatedID int64) (bool, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
