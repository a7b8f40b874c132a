package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("auth")

// Revoker records token ids that must no longer be accepted.
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevoker struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisRevoker creates a Revoker backed by Redis keys that expire with the token.
func NewRedisRevoker(rdb *redis.Client) Revoker {
	return &redisRevoker{rdb: rdb, now: time.Now}
}

func revokedKey(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}

// Revoke blocks jti until the given time. A zero until blocks it for good, matching a token that never expires.
func (r *redisRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	ctx, span := tracer.Start(ctx, "Revoker.Revoke")
	defer span.End()

	var ttl time.Duration
	if !until.IsZero() {
		ttl = until.Sub(r.now())
		if ttl <= 0 {
			// Already expired, nothing left to block.
			return nil
		}
	}
	if err := r.rdb.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (r *redisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Revoker.IsRevoked")
	defer span.End()

	err := r.rdb.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}
