package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

const userColumns = `id, username, full_name, email, phone, address, role`

func (r *Repository) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE api_token = $1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.Address,
		&user.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}
	return &user, nil
}
