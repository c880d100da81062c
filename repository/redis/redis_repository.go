package redis

import (
	"context"
	"time"

	redisclient "github.com/muhammadheryan/sample-api/cmd/redis"
)

const revokedKeyPrefix = "revoked:"

// Repository keeps the token revocation list in Redis.
// Every method is a no-op when no client has been initialized.
type Repository interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// RevokedKey is the key a revoked token id is stored under
func RevokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// RevokeToken marks a token id revoked until ttl elapses, which should be the
// token's remaining lifetime.
func (r *redis) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, RevokedKey(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether a token id has been revoked
func (r *redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	client := redisclient.Get()
	if client == nil {
		return false, nil
	}
	n, err := client.Exists(ctx, RevokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
