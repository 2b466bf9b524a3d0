package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisSummaryCache stores month summaries in Redis so invalidation reaches
// every replica. Cache failures are never surfaced to callers: a miss or a
// dropped write only costs a rebuild from the ledger.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisConfig holds the Redis connection settings for the summary cache
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisSummaryCacheOption is a functional option for configuring the cache
type RedisSummaryCacheOption func(*RedisSummaryCache)

// WithRedisSummaryTTL sets the entry time-to-live
func WithRedisSummaryTTL(ttl time.Duration) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.logger = logger
	}
}

// NewRedisSummaryCache creates a Redis-backed month summary cache,
// verifying connectivity before returning
func NewRedisSummaryCache(cfg RedisConfig, opts ...RedisSummaryCacheOption) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := &RedisSummaryCache{
		client: client,
		ttl:    defaultSummaryTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the cached summary and whether it was present
func (c *RedisSummaryCache) Get(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthSummary, bool) {
	data, err := c.client.Get(ctx, summaryKey(clientID, period)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("summary cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var summary fiscal.MonthSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("summary cache entry is corrupt, dropping it", zap.Error(err))
		c.client.Del(ctx, summaryKey(clientID, period))
		return nil, false
	}
	return &summary, true
}

// Set stores a freshly derived summary
func (c *RedisSummaryCache) Set(ctx context.Context, summary fiscal.MonthSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Warn("summary cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, summaryKey(summary.ClientID, summary.Period), data, c.ttl).Err(); err != nil {
		c.logger.Warn("summary cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached summary for a client and period
func (c *RedisSummaryCache) Invalidate(ctx context.Context, clientID uuid.UUID, period valueobject.Period) {
	if err := c.client.Del(ctx, summaryKey(clientID, period)).Err(); err != nil {
		c.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}

// Close releases the underlying Redis connection
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}
