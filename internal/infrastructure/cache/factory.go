package cache

import (
	"fmt"
	"time"

	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SummaryCacheFactory creates month summary caches based on configuration
type SummaryCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SummaryCacheFactoryOption is a functional option for configuring the factory
type SummaryCacheFactoryOption func(*SummaryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the cache entry time-to-live
func WithTTL(ttl time.Duration) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SummaryCacheFactoryOption {
	return func(f *SummaryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSummaryCacheFactory creates a new factory
func NewSummaryCacheFactory(cfg config.RedisConfig, opts ...SummaryCacheFactoryOption) *SummaryCacheFactory {
	f := &SummaryCacheFactory{
		redisConfig:           cfg,
		ttl:                   defaultSummaryTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache creates a month summary cache. It tries Redis first and falls
// back to the in-memory cache when Redis is unavailable and fallback is
// allowed. A single-instance deployment loses nothing in the fallback; a
// multi-instance one may serve summaries a TTL stale after an invalidation
// on another replica, hence the warning.
func (f *SummaryCacheFactory) CreateCache() (appfiscal.MonthSummaryCache, error) {
	redisCache, err := NewRedisSummaryCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, WithRedisSummaryTTL(f.ttl), WithRedisLogger(f.logger))
	if err == nil {
		f.logger.Info("using Redis month summary cache")
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for summary cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory summary cache",
		zap.Error(err),
	)
	return NewInMemorySummaryCache(WithSummaryTTL(f.ttl)), nil
}
