package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

const orderColumns = `id, user_id, status, confirmed_at, eta_minutes, estimate_delivery_time, actual_delivery_time,
	delivery_otp, delivery_otp_expiry, delivered, delivered_at, grand_total, cancelled_by, cancelled_at, left_time`

// CreateOrder inserts the order and all of its lines in one transaction, so
// a failure never leaves an orphaned order without lines.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `INSERT INTO orders (id, user_id, status, confirmed_at, eta_minutes, estimate_delivery_time,
	               actual_delivery_time, delivered, grand_total, cancelled_by)
	               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.Status,
		order.ConfirmedAt,
		order.EtaMinutes,
		order.EstimateDeliveryTime,
		order.ActualDeliveryTime,
		order.Delivered,
		order.GrandTotal,
		order.CancelledBy,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	lineQuery := `INSERT INTO order_lines (order_id, name, price, quantity, image)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	for i := range order.Lines {
		line := &order.Lines[i]
		if err := tx.QueryRowContext(ctx, lineQuery,
			line.OrderID,
			line.Name,
			line.Price,
			line.Quantity,
			line.Image,
		).Scan(&line.ID); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY confirmed_at`, orderColumns)
	return r.queryOrders(ctx, query, userID)
}

func (r *Repository) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY confirmed_at`, orderColumns)
	return r.queryOrders(ctx, query)
}

// UpdateOrder writes every mutable field back; estimate_delivery_time and
// the creation-time columns stay untouched.
func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET status = $2, actual_delivery_time = $3, delivery_otp = $4, delivery_otp_expiry = $5,
	          delivered = $6, delivered_at = $7, cancelled_by = $8, cancelled_at = $9, left_time = $10
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.Status,
		order.ActualDeliveryTime,
		order.DeliveryOTP,
		order.DeliveryOTPExpiry,
		order.Delivered,
		order.DeliveredAt,
		order.CancelledBy,
		order.CancelledAt,
		order.LeftTime,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *Repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var leftTime sql.NullInt64
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.ConfirmedAt,
		&order.EtaMinutes,
		&order.EstimateDeliveryTime,
		&order.ActualDeliveryTime,
		&order.DeliveryOTP,
		&order.DeliveryOTPExpiry,
		&order.Delivered,
		&order.DeliveredAt,
		&order.GrandTotal,
		&order.CancelledBy,
		&order.CancelledAt,
		&leftTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}
	if leftTime.Valid {
		lt := int(leftTime.Int64)
		order.LeftTime = &lt
	}
	return &order, nil
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		if err := r.loadLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *Repository) loadLines(ctx context.Context, order *domain.Order) error {
	query := `SELECT id, order_id, name, price, quantity, image FROM order_lines WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.Name, &line.Price, &line.Quantity, &line.Image); err != nil {
			return fmt.Errorf("scan order line row: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}
