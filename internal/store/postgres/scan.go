package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/groblegark/orderledger/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanOrder scans a single row into a model.Order.
// The row must contain columns in the order defined by orderColumns.
func scanOrder(row scannable) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.Number,
		&o.Status,
		&o.ChannelID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// scanOrderWithTotal scans a row that has a leading total_count column
// followed by the standard order columns. Used by queryListOrders with
// COUNT(*) OVER().
func scanOrderWithTotal(row scannable) (*model.Order, int, error) {
	var total int
	var o model.Order
	err := row.Scan(
		&total,
		&o.ID,
		&o.Number,
		&o.Status,
		&o.ChannelID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}
	return &o, total, nil
}

// scanEvent scans a single row into a model.OrderEvent.
func scanEvent(row scannable) (*model.OrderEvent, error) {
	var e model.OrderEvent
	var (
		userID     sql.NullString
		appID      sql.NullString
		parameters []byte
	)
	err := row.Scan(&e.ID, &e.OrderID, &e.Kind, &userID, &appID, &parameters, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Actor.UserID = userID.String
	e.Actor.AppID = appID.String
	if len(parameters) > 0 {
		e.Parameters = json.RawMessage(parameters)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.OrderEvent pointers.
func scanEvents(rows *sql.Rows) ([]*model.OrderEvent, error) {
	var events []*model.OrderEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
