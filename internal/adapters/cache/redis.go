package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second
	statusTimeout  = 2 * time.Second
)

// NewRedisClient connects to redis at addr. The client is closed again when the
// first ping fails.
func NewRedisClient(ctx context.Context, addr, password string, dbIndex int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := ping(ctx, rdb, connectTimeout); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// Status reports "connected" or "unreachable" for the health endpoint.
// A nil client reports "disabled".
func Status(ctx context.Context, rdb *redis.Client) string {
	if rdb == nil {
		return "disabled"
	}
	if err := ping(ctx, rdb, statusTimeout); err != nil {
		return "unreachable"
	}
	return "connected"
}

func ping(ctx context.Context, rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
