package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

const (
	InsertOrderQuery = `
		INSERT INTO
			orders (id, authorization_id, status, amount, tracking_number, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	SelectOrderQuery = `
		SELECT
			id,
			authorization_id,
			status,
			amount,
			tracking_number,
			metadata,
			created_at,
			updated_at
		FROM
			orders
		WHERE
			id = $1
	`
	SelectOrderForUpdateQuery = SelectOrderQuery + `
		FOR UPDATE
	`
	UpdateOrderQuery = `
		UPDATE
			orders
		SET
			status = $2,
			tracking_number = $3,
			updated_at = $4
		WHERE
			id = $1
	`
)

// InsertOrderIfAbsent stores a new order. It returns false when an order with
// the same id already exists.
func (d *Database) InsertOrderIfAbsent(ctx context.Context, order models.Order) (bool, error) {
	metadata := order.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	_, err := d.db.Exec(ctx, InsertOrderQuery,
		order.ID,
		order.AuthorizationID,
		string(order.Status),
		order.Amount,
		order.TrackingNumber,
		metadata,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert order: %w", err)
	}

	return true, nil
}

func (d *Database) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	order, err := scanOrder(d.db.QueryRow(ctx, SelectOrderQuery, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("failed to select order: %w", err)
	}

	return order, nil
}

// UpdateOrder locks the order row, applies mutate and writes the result back in
// one transaction. Nothing is written when mutate returns an error.
// Only status, tracking number and updated_at are persisted; the rest is immutable.
func (d *Database) UpdateOrder(ctx context.Context, orderID string, mutate func(order *models.Order) error) (models.Order, error) {
	tx, err := d.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	order, err := scanOrder(tx.QueryRow(ctx, SelectOrderForUpdateQuery, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("failed to lock order: %w", err)
	}

	if err := mutate(&order); err != nil {
		return models.Order{}, err
	}
	order.ID = orderID

	if _, err := tx.Exec(ctx, UpdateOrderQuery, order.ID, string(order.Status), order.TrackingNumber, order.UpdatedAt); err != nil {
		return models.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit order update: %w", err)
	}

	return order, nil
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var (
		order  models.Order
		status string
	)

	err := row.Scan(
		&order.ID,
		&order.AuthorizationID,
		&status,
		&order.Amount,
		&order.TrackingNumber,
		&order.Metadata,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return models.Order{}, err
	}

	order.Status = models.OrderStatus(status)
	return order, nil
}
