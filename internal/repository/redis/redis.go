package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/service-dispatch/internal/config"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

type Client struct {
	client *redis.Client
	log    *slog.Logger
}

// NewClient connects to Redis and pings it before returning.
func NewClient(cfg config.Redis, log *slog.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info("connected to redis", slog.String("addr", cfg.Addr))

	return &Client{client: rdb, log: log}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// RevocationStore keeps the ids of signed-out tokens until they would have
// expired anyway.
type RevocationStore struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRevocationStore(c *Client) *RevocationStore {
	return &RevocationStore{client: c.client, log: c.log}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	const op = "internal.repository.redis.Revoke"

	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to store revoked token: %w", op, err)
	}

	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	const op = "internal.repository.redis.IsRevoked"

	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%s: failed to check token: %w", op, err)
	}

	return n > 0, nil
}
