package db

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates and returns a new Redis client for connString.
// connString is either a redis:// URL or a bare host:port address.
func NewRedisClient(ctx context.Context, connString string) (*redis.Client, error) {
	opts, err := redis.ParseURL(connString)
	if err != nil {
		opts = &redis.Options{Addr: connString}
	}

	client := redis.NewClient(opts)

	// Ping the server to ensure the connection is established.
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
