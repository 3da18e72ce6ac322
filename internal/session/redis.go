package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

const defaultTTL = time.Hour

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    defaultTTL,
	}
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*domain.PendingOrder, error) {
	data, err := s.client.Get(ctx, storeKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoPendingOrder
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var pending domain.PendingOrder
	if err2 := json.Unmarshal(data, &pending); err2 != nil {
		return nil, fmt.Errorf("unmarshal pending order failed: %w", err2)
	}

	return &pending, nil
}

// Put overwrites any existing draft and resets the TTL.
func (s *RedisStore) Put(ctx context.Context, userID int64, pending *domain.PendingOrder) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("marshal pending order failed: %w", err)
	}

	if ret := s.client.Set(ctx, storeKey(userID), data, s.ttl); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, storeKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storeKey(userID int64) string {
	return fmt.Sprintf("pending_order:%d", userID)
}
