package cache

import (
	"context"
	"errors"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

type MenuCache interface {
	Get(ctx context.Context) ([]domain.MenuItem, error)
	Set(ctx context.Context, items []domain.MenuItem) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
