package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient backs the page cache.
var RedisClient *redis.Client

// InitRedis connects to Redis and checks the connection with PING.
func InitRedis(ctx context.Context, s *Settings) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})

	pong, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	Logger.Info("✅ Connected to Redis", zap.String("ping", pong))
	return nil
}
