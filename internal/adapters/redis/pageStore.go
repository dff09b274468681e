package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// PageStoreRedis keeps rendered pages as plain string keys with a TTL.
type PageStoreRedis struct {
	Client *redis.Client
}

func NewPageStoreRedis(client *redis.Client) *PageStoreRedis {
	return &PageStoreRedis{Client: client}
}

func (r *PageStoreRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (r *PageStoreRedis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, key, body, ttl).Err()
}
