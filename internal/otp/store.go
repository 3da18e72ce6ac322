package otp

import (
	"context"
	"errors"
)

// Store keeps cancellation codes keyed by order id. Entries carry an
// explicit TTL; an expired or never-issued code reads as ErrCodeNotFound.
type Store interface {
	Set(ctx context.Context, orderID string, code string) error
	Get(ctx context.Context, orderID string) (string, error)
	Delete(ctx context.Context, orderID string) error
}

var ErrCodeNotFound = errors.New("no cancel code for order")
