package archive

import (
	"context"
	"database/sql"

	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

// mockStore is a minimal in-memory store.Store for archive tests.
type mockStore struct {
	orders map[string]*model.Order
	events map[string][]*model.OrderEvent
}

func newMockStore() *mockStore {
	return &mockStore{
		orders: make(map[string]*model.Order),
		events: make(map[string][]*model.OrderEvent),
	}
}

func (m *mockStore) CreateOrder(_ context.Context, order *model.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockStore) GetOrder(_ context.Context, id string) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (m *mockStore) ListOrders(_ context.Context, _ model.OrderFilter) ([]*model.Order, int, error) {
	var result []*model.Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, len(result), nil
}

func (m *mockStore) RecordEvent(_ context.Context, event *model.OrderEvent) error {
	m.events[event.OrderID] = append(m.events[event.OrderID], event)
	return nil
}

func (m *mockStore) GetEvent(_ context.Context, id int64) (*model.OrderEvent, error) {
	for _, events := range m.events {
		for _, e := range events {
			if e.ID == id {
				return e, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) GetNoteEvent(_ context.Context, id int64) (*model.OrderEvent, error) {
	e, err := m.GetEvent(context.Background(), id)
	if err != nil || e.Kind != model.KindNoteAdded {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

func (m *mockStore) UpdateEventParameters(_ context.Context, _ *model.OrderEvent) error {
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, orderID string) ([]*model.OrderEvent, error) {
	return m.events[orderID], nil
}

func (m *mockStore) HasRemovalFor(_ context.Context, _ int64) (bool, error) {
	return false, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
