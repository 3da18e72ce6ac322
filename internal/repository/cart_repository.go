package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

// ListLines returns the user's cart in insertion order.
func (r *Repository) ListLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	query := `SELECT id, user_id, item_id, quantity FROM cart_lines WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.UserID, &line.ItemID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line row: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lines, nil
}

func (r *Repository) GetLine(ctx context.Context, userID, itemID int64) (*domain.CartLine, error) {
	query := `SELECT id, user_id, item_id, quantity FROM cart_lines WHERE user_id = $1 AND item_id = $2`

	var line domain.CartLine
	err := r.db.QueryRowContext(ctx, query, userID, itemID).Scan(&line.ID, &line.UserID, &line.ItemID, &line.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart line: %w", err)
	}

	return &line, nil
}

// UpsertLine creates the (user, item) line at quantity 1 or increments an
// existing one.
func (r *Repository) UpsertLine(ctx context.Context, userID, itemID int64) error {
	query := `INSERT INTO cart_lines (user_id, item_id, quantity) VALUES ($1, $2, 1)
	          ON CONFLICT (user_id, item_id) DO UPDATE SET quantity = cart_lines.quantity + 1`

	if _, err := r.db.ExecContext(ctx, query, userID, itemID); err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

func (r *Repository) SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	query := `UPDATE cart_lines SET quantity = $3 WHERE user_id = $1 AND item_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart line quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

func (r *Repository) DeleteLine(ctx context.Context, userID, itemID int64) error {
	query := `DELETE FROM cart_lines WHERE user_id = $1 AND item_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, itemID); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// DeleteLinesByItemIDs removes the fulfilled lines after an order is
// confirmed. Callers treat failures as non-fatal.
func (r *Repository) DeleteLinesByItemIDs(ctx context.Context, userID int64, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}

	query := `DELETE FROM cart_lines WHERE user_id = $1 AND item_id = ANY($2)`

	if _, err := r.db.ExecContext(ctx, query, userID, pq.Array(itemIDs)); err != nil {
		return fmt.Errorf("delete cart lines by item ids: %w", err)
	}
	return nil
}
