package server

import (
	"context"
	"fmt"

	"github.com/groblegark/orderledger/internal/auth"
	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

type noteInput struct {
	Message string `json:"message"`
}

// noteResult is the envelope returned by every note mutation: the parent
// order and the event the mutation touched.
type noteResult struct {
	Order *model.Order      `json:"order"`
	Event *model.OrderEvent `json:"event"`
}

// addNote validates the message, appends a note_added event to the order
// inside a transaction, and dispatches an update after commit.
func (s *OrdersServer) addNote(ctx context.Context, orderID string, in noteInput) (*noteResult, error) {
	principal, _ := auth.FromContext(ctx)
	if err := s.authorize(principal, ""); err != nil {
		return nil, err
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(principal, order.ChannelID); err != nil {
		return nil, err
	}

	message, err := model.CleanNoteMessage(in.Message)
	if err != nil {
		return nil, err
	}

	event := model.NewNoteAdded(order.ID, s.actorFor(principal), message)
	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		return tx.RecordEvent(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	s.dispatcher.OrderUpdated(ctx, order, event)

	return &noteResult{Order: order, Event: event}, nil
}

// updateNote replaces the message of an existing note_added event in place.
// The event keeps its identity; only parameters.message changes.
func (s *OrdersServer) updateNote(ctx context.Context, eventID int64, in noteInput) (*noteResult, error) {
	principal, _ := auth.FromContext(ctx)
	if err := s.authorize(principal, ""); err != nil {
		return nil, err
	}

	// Kind-filtered lookup: an ID that exists but is not a note_added
	// event misses here, same as an unknown ID.
	event, err := s.store.GetNoteEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	order, err := s.store.GetOrder(ctx, event.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(principal, order.ChannelID); err != nil {
		return nil, err
	}

	message, err := model.CleanNoteMessage(in.Message)
	if err != nil {
		return nil, err
	}

	event.SetMessage(message)
	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		return tx.UpdateEventParameters(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.dispatcher.OrderUpdated(ctx, order, event)

	return &noteResult{Order: order, Event: event}, nil
}

// removeNote records a note_removed tombstone referencing the targeted
// note_added event. The original event row is never deleted or mutated.
// Removing an already-removed note fails with store.ErrAlreadyRemoved, both
// via the pre-check and, under concurrent removal, via the tombstone's
// unique index.
func (s *OrdersServer) removeNote(ctx context.Context, eventID int64) (*noteResult, error) {
	principal, _ := auth.FromContext(ctx)
	if err := s.authorize(principal, ""); err != nil {
		return nil, err
	}

	target, err := s.store.GetNoteEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	order, err := s.store.GetOrder(ctx, target.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(principal, order.ChannelID); err != nil {
		return nil, err
	}

	removed, err := s.store.HasRemovalFor(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check removal: %w", err)
	}
	if removed {
		return nil, store.ErrAlreadyRemoved
	}

	tombstone := model.NewNoteRemoved(order.ID, s.actorFor(principal), target.ID)
	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		return tx.RecordEvent(ctx, tombstone)
	})
	if err != nil {
		// Concurrent removal loses the index race and surfaces the same
		// conflict as the pre-check.
		return nil, err
	}

	s.dispatcher.OrderUpdated(ctx, order, tombstone)

	return &noteResult{Order: order, Event: tombstone}, nil
}
