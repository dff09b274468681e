package pagecacheapp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yatube/internal/config"
	pagecachePort "yatube/internal/ports/pagecache"
)

// PageCacheService keeps rendered pages of one endpoint for a fixed TTL.
// Keys carry only the page number, so cached bodies must not depend on who
// is looking. Entries are never invalidated explicitly.
type PageCacheService struct {
	Store  pagecachePort.Store
	Prefix string
	TTL    time.Duration
}

func NewPageCacheService(store pagecachePort.Store, prefix string, ttl time.Duration) *PageCacheService {
	return &PageCacheService{Store: store, Prefix: prefix, TTL: ttl}
}

func (s *PageCacheService) Key(page int) string {
	return fmt.Sprintf("%s:page=%d", s.Prefix, page)
}

// GetOrCompute returns the cached body for page, or runs compute and caches
// its result. Store failures fall back to compute. A compute error is
// returned as is and nothing is cached.
func (s *PageCacheService) GetOrCompute(ctx context.Context, page int, compute func(ctx context.Context) ([]byte, error)) ([]byte, bool, error) {
	key := s.Key(page)

	body, ok, err := s.Store.Get(ctx, key)
	if err != nil {
		config.Logger.Warn("⚠️ Page cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return body, true, nil
	}

	body, err = compute(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := s.Store.Set(ctx, key, body, s.TTL); err != nil {
		config.Logger.Warn("⚠️ Page cache write failed", zap.String("key", key), zap.Error(err))
	}
	return body, false, nil
}
