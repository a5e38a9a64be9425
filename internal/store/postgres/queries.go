package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/groblegark/orderledger/internal/model"
	"github.com/groblegark/orderledger/internal/store"
)

// orderColumns is the column list used for SELECT statements on the orders table.
const orderColumns = `id, number, status, channel_id, created_at, updated_at`

// eventColumns is the column list used for SELECT statements on the order_events table.
const eventColumns = `id, order_id, kind, user_id, app_id, parameters, created_at`

// uniqueTombstoneConstraint is the partial unique index that allows at most
// one note_removed tombstone per superseded note_added event.
const uniqueTombstoneConstraint = "order_events_one_tombstone"

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateOrder(ctx context.Context, db executor, o *model.Order) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO orders (id, status, channel_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING number`,
		o.ID,
		string(o.Status),
		o.ChannelID,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&o.Number)
}

func queryGetOrder(ctx context.Context, db executor, id string) (*model.Order, error) {
	row := db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func queryListOrders(ctx context.Context, db executor, filter model.OrderFilter) ([]*model.Order, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.ChannelID != "" {
		whereClauses = append(whereClauses, "channel_id = "+nextArg())
		args = append(args, filter.ChannelID)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + orderColumns + " FROM orders" + whereSQL + " ORDER BY created_at ASC"

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	var total int
	for rows.Next() {
		o, t, err := scanOrderWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan orders: %w", err)
		}
		total = t
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan orders: %w", err)
	}

	return orders, total, nil
}

func queryRecordEvent(ctx context.Context, db executor, e *model.OrderEvent) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO order_events (order_id, kind, user_id, app_id, parameters)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.OrderID,
		string(e.Kind),
		nullString(e.Actor.UserID),
		nullString(e.Actor.AppID),
		jsonbBytes(e.Parameters),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil && isUniqueViolation(err, uniqueTombstoneConstraint) {
		return store.ErrAlreadyRemoved
	}
	return err
}

func queryGetEvent(ctx context.Context, db executor, id int64) (*model.OrderEvent, error) {
	row := db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM order_events WHERE id = $1`, id)
	return scanEvent(row)
}

func queryGetNoteEvent(ctx context.Context, db executor, id int64) (*model.OrderEvent, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM order_events
		WHERE id = $1 AND kind = $2`,
		id, string(model.KindNoteAdded),
	)
	return scanEvent(row)
}

func queryUpdateEventParameters(ctx context.Context, db executor, e *model.OrderEvent) error {
	res, err := db.ExecContext(ctx, `
		UPDATE order_events SET parameters = $2 WHERE id = $1`,
		e.ID, jsonbBytes(e.Parameters),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryGetEvents(ctx context.Context, db executor, orderID string) ([]*model.OrderEvent, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM order_events
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func queryHasRemovalFor(ctx context.Context, db executor, relatedID int64) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_events
			WHERE kind = $1 AND (parameters->>'related_pk')::bigint = $2
		)`,
		string(model.KindNoteRemoved), relatedID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check removal: %w", err)
	}
	return exists, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505)
// on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
