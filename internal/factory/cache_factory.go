package factory

import (
	"fmt"
	"time"

	"github.com/mikey/llm-auto-responder/internal/adapters/cache"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates classification caches
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// IsCacheEnabled reports whether classification caching is enabled.
func (f *CacheFactory) IsCacheEnabled() bool {
	return f.cfg.GetCache().Enabled
}

// GetCacheTTL returns the configured cache time-to-live.
func (f *CacheFactory) GetCacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(f.cfg.GetCache().TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache TTL: %w", err)
	}
	return ttl, nil
}

// CreateClassificationCache creates a classification cache, or nil
// when caching is disabled.
func (f *CacheFactory) CreateClassificationCache() (core.ClassificationCache, error) {
	cacheCfg := f.cfg.GetCache()
	if !cacheCfg.Enabled {
		return nil, nil
	}

	cleanupFreq, err := time.ParseDuration(cacheCfg.CleanupFrequency)
	if err != nil {
		return nil, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}

	return cache.NewMemoryCache(f.logger, cleanupFreq), nil
}
