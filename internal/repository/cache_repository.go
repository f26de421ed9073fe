package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/datepool-api/pkg/errors"
)

// CacheRepository fronts Redis for date-set retrieval by identifier. A nil
// client degrades to a permanent miss so the service works without Redis.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger}
}

func dateSetKey(id string) string {
	return "dateset:" + id
}

// GetDateSet retrieves and unmarshals a cached set into dest.
func (r *CacheRepository) GetDateSet(ctx context.Context, id string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, dateSetKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", dateSetKey(id), err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cached date set %s: %w", id, err)
	}
	return nil
}

// SetDateSet stores a set with the given TTL. Failures are logged, not
// returned: caching is best effort and must not fail generation.
func (r *CacheRepository) SetDateSet(ctx context.Context, id string, value interface{}, ttl time.Duration) {
	if r.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("marshal date set for cache", zap.String("id", id), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, dateSetKey(id), payload, ttl).Err(); err != nil {
		r.logger.Warn("cache date set", zap.String("id", id), zap.Error(err))
	}
}

// InvalidateDateSet drops a cached set.
func (r *CacheRepository) InvalidateDateSet(ctx context.Context, id string) {
	if r.client == nil {
		return
	}
	if err := r.client.Del(ctx, dateSetKey(id)).Err(); err != nil {
		r.logger.Warn("invalidate cached date set", zap.String("id", id), zap.Error(err))
	}
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
