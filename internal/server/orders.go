package server

import (
	"context"
	"fmt"
	"time"

	"github.com/groblegark/orderledger/internal/auth"
	"github.com/groblegark/orderledger/internal/idgen"
	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

type createOrderInput struct {
	Status    string `json:"status"`
	ChannelID string `json:"channel_id"`
}

// createOrder persists a new order and dispatches an OrderCreated event.
func (s *OrdersServer) createOrder(ctx context.Context, in createOrderInput) (*model.Order, error) {
	principal, _ := auth.FromContext(ctx)
	if err := s.authorize(principal, in.ChannelID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id, err := idgen.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	status := model.OrderStatus(in.Status)
	if in.Status == "" {
		status = model.StatusUnconfirmed
	}

	order := &model.Order{
		ID:        id,
		Status:    status,
		ChannelID: in.ChannelID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := model.ValidateOrder(order); err != nil {
		return nil, err
	}

	placed := &model.OrderEvent{
		OrderID: order.ID,
		Kind:    model.KindPlaced,
		Actor:   s.actorFor(principal),
	}
	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		return tx.RecordEvent(ctx, placed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.dispatcher.OrderCreated(ctx, order)

	return order, nil
}

// getOrder loads one order with its full event log.
func (s *OrdersServer) getOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.store.GetEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	order.Events = events
	return order, nil
}
