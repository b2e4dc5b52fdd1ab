package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/TrendScope/internal/model"
	"github.com/mathieu-neron/TrendScope/pkg/hash"
)

// DefaultHierarchyTTL bounds how long a memoized tree lives in Redis.
const DefaultHierarchyTTL = 30 * time.Minute

// HierarchyCache stores aggregated trees by (field, date). A disabled cache
// misses every read and drops every write.
type HierarchyCache interface {
	Enabled() bool
	GetHierarchy(ctx context.Context, field model.TextField, date string) (*model.AggregationNode, error)
	SetHierarchy(ctx context.Context, field model.TextField, date string, root *model.AggregationNode) error
}

// CacheService memoizes aggregated trees in Redis keyed by (field, date).
// A nil client disables caching; every operation becomes a no-op miss.
type CacheService struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCacheService connects to redisURL. An empty URL or a failed connection
// yields a disabled cache rather than an error.
func NewCacheService(redisURL string, ttl time.Duration, log zerolog.Logger) *CacheService {
	if ttl <= 0 {
		ttl = DefaultHierarchyTTL
	}
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, hierarchy cache disabled")
		return &CacheService{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, hierarchy cache disabled")
		return &CacheService{ttl: ttl}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, hierarchy cache disabled")
		_ = rdb.Close()
		return &CacheService{ttl: ttl}
	}

	log.Info().Msg("redis: connected, hierarchy cache enabled")
	return &CacheService{rdb: rdb, ttl: ttl}
}

// NewCacheServiceWithClient wraps an existing client.
func NewCacheServiceWithClient(rdb *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultHierarchyTTL
	}
	return &CacheService{rdb: rdb, ttl: ttl}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Enabled reports whether a Redis client is configured.
func (c *CacheService) Enabled() bool {
	return c.rdb != nil
}

// SetNamespace scopes keys to one loaded data set so trees from a previous
// load are never served.
func (c *CacheService) SetNamespace(ns string) {
	c.namespace = ns
}

// GetHierarchy returns the memoized tree, or nil when absent or disabled.
func (c *CacheService) GetHierarchy(ctx context.Context, field model.TextField, date string) (*model.AggregationNode, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, c.hierarchyKey(field, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var root model.AggregationNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// SetHierarchy stores a tree under (field, date).
func (c *CacheService) SetHierarchy(ctx context.Context, field model.TextField, date string, root *model.AggregationNode) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(root)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.hierarchyKey(field, date), b, c.ttl).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *CacheService) hierarchyKey(field model.TextField, date string) string {
	return "hierarchy:" + hash.Key(c.namespace, string(field), date)
}
