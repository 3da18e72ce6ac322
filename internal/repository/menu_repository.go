package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

const menuColumns = `id, name, description, price, category, image, popular, created_at, updated_at, COALESCE(created_by, 0)`

func (r *Repository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM menu_items ORDER BY created_at DESC, id DESC`, menuColumns)
	return r.queryItems(ctx, query)
}

func (r *Repository) ListPopularItems(ctx context.Context) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM menu_items WHERE popular ORDER BY created_at DESC, id DESC`, menuColumns)
	return r.queryItems(ctx, query)
}

func (r *Repository) queryItems(ctx context.Context, query string, args ...interface{}) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Category,
			&item.Image,
			&item.Popular,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan menu item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func (r *Repository) GetItem(ctx context.Context, itemID int64) (*domain.MenuItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM menu_items WHERE id = $1`, menuColumns)

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Image,
		&item.Popular,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.CreatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item by id: %w", err)
	}

	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	query := `INSERT INTO menu_items (name, description, price, category, image, popular, created_at, updated_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW(), NULLIF($7, 0))
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		item.Image,
		item.Popular,
		item.CreatedBy,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}
