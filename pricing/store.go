package pricing

import (
	"context"
	"time"
)

// Store is a byte cache with expiry. A ttl of zero or less never expires.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
