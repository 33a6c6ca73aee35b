package cache

import (
	"sync"
	"time"

	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

type entry struct {
	category  core.Category
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of the
// ClassificationCache interface, keyed by sender address. Entries live
// only for the lifetime of the process.
type MemoryCache struct {
	entries     map[string]entry
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryCache creates a new in-memory cache with a background
// cleanup task running at cleanupFreq.
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries:     make(map[string]entry),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	go c.startCleanupTask()

	return c
}

// Get retrieves a cached category for a sender.
func (c *MemoryCache) Get(senderEmail string) (core.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[senderEmail]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}

	return e.category, true
}

// Set stores a category for a sender with a time-to-live.
func (c *MemoryCache) Set(senderEmail string, category core.Category, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[senderEmail] = entry{
		category:  category,
		expiresAt: time.Now().Add(ttl),
	}
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			expired++
		}
	}

	c.logger.Debug("Cleaned up expired cache entries", zap.Int("expired_count", expired))
}

func (c *MemoryCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task.
func (c *MemoryCache) Stop() {
	close(c.stopCh)
}
