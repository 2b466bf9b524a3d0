package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const defaultSummaryTTL = 10 * time.Minute

// InMemorySummaryCache holds month summaries in process memory. Suitable for
// single-instance deployments and tests; multi-instance deployments use the
// Redis-backed cache so invalidations reach every replica.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[string]summaryEntry
	ttl     time.Duration
}

type summaryEntry struct {
	summary   fiscal.MonthSummary
	expiresAt time.Time
}

// InMemorySummaryCacheOption is a functional option for configuring the cache
type InMemorySummaryCacheOption func(*InMemorySummaryCache)

// WithSummaryTTL sets the entry time-to-live
func WithSummaryTTL(ttl time.Duration) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewInMemorySummaryCache creates a new in-memory month summary cache
func NewInMemorySummaryCache(opts ...InMemorySummaryCacheOption) *InMemorySummaryCache {
	c := &InMemorySummaryCache{
		entries: make(map[string]summaryEntry),
		ttl:     defaultSummaryTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func summaryKey(clientID uuid.UUID, period valueobject.Period) string {
	return fmt.Sprintf("summary:%s:%s", clientID, period)
}

// Get returns the cached summary and whether it was present
func (c *InMemorySummaryCache) Get(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthSummary, bool) {
	c.mu.RLock()
	entry, ok := c.entries[summaryKey(clientID, period)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	summary := entry.summary
	return &summary, true
}

// Set stores a freshly derived summary
func (c *InMemorySummaryCache) Set(ctx context.Context, summary fiscal.MonthSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[summaryKey(summary.ClientID, summary.Period)] = summaryEntry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached summary for a client and period
func (c *InMemorySummaryCache) Invalidate(ctx context.Context, clientID uuid.UUID, period valueobject.Period) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, summaryKey(clientID, period))
}
