package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

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

func (s *RedisStore) Set(ctx context.Context, orderID string, code string) error {
	if ret := s.client.Set(ctx, storeKey(orderID), code, s.ttl); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, orderID string) (string, error) {
	code, err := s.client.Get(ctx, storeKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Delete(ctx context.Context, orderID string) error {
	if err := s.client.Del(ctx, storeKey(orderID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storeKey(orderID string) string {
	return fmt.Sprintf("cancel_otp:%s", orderID)
}
