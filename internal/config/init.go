package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultPageCacheTTL = 3 * time.Minute

// Settings holds everything read from the environment at startup.
type Settings struct {
	Port          string
	Env           string
	DBDriver      string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	PageCacheTTL  time.Duration
	MediaRoot     string
	MediaBucket   string
}

// Load reads .env (when present) and the process environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	s := &Settings{
		Port:          getEnv("APP_PORT", "8000"),
		Env:           getEnv("APP_ENV", "development"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PageCacheTTL:  defaultPageCacheTTL,
		MediaRoot:     getEnv("MEDIA_ROOT", "media"),
		MediaBucket:   os.Getenv("MEDIA_BUCKET"),
	}

	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		redisDB = 0
	}
	s.RedisDB = redisDB

	if raw := os.Getenv("PAGE_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, errors.New("PAGE_CACHE_TTL must be a positive duration")
		}
		s.PageCacheTTL = ttl
	}

	if s.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if s.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is not set")
	}
	if s.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return s, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
