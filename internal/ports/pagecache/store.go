package pagecache

import (
	"context"
	"time"
)

// Store keeps rendered pages for a bounded time.
type Store interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}
