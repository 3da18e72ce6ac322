package session

import (
	"context"
	"errors"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

// Store holds the one pending order a user may have between requests.
// Entries expire on their own; a draft must not be assumed to survive a
// process restart or its TTL.
type Store interface {
	Get(ctx context.Context, userID int64) (*domain.PendingOrder, error)
	Put(ctx context.Context, userID int64, pending *domain.PendingOrder) error
	Delete(ctx context.Context, userID int64) error
}

var ErrNoPendingOrder = errors.New("no pending order")
