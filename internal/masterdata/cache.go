package masterdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

const keyPrefix = "quotedesk:md"

// Cache is the subset of the redis client the cached source needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedSource caches branches and customers in redis. Catalog items are not
// cached since prices change independently of documents. Cache failures are
// logged and the request falls through to the wrapped source.
type CachedSource struct {
	next  port.MasterDataSource
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

var _ port.MasterDataSource = (*CachedSource)(nil)

// NewCachedSource wraps next with a redis cache.
func NewCachedSource(next port.MasterDataSource, cache Cache, ttl time.Duration, log *zap.Logger) *CachedSource {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSource{next: next, cache: cache, ttl: ttl, log: log}
}

// GetBranch implements port.MasterDataSource.
func (s *CachedSource) GetBranch(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Branch, error) {
	key := cacheKey("branch", tenantID, id)
	var b domain.Branch
	if s.load(ctx, key, &b) {
		return &b, nil
	}
	fresh, err := s.next.GetBranch(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fresh)
	return fresh, nil
}

// GetCustomer implements port.MasterDataSource.
func (s *CachedSource) GetCustomer(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Customer, error) {
	key := cacheKey("customer", tenantID, id)
	var c domain.Customer
	if s.load(ctx, key, &c) {
		return &c, nil
	}
	fresh, err := s.next.GetCustomer(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fresh)
	return fresh, nil
}

// GetCatalogItems implements port.MasterDataSource without caching.
func (s *CachedSource) GetCatalogItems(ctx context.Context, tenantID uuid.UUID, refs []domain.ItemRef) ([]domain.CatalogItem, error) {
	return s.next.GetCatalogItems(ctx, tenantID, refs)
}

func (s *CachedSource) load(ctx context.Context, key string, dest interface{}) bool {
	val, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("master data cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		s.log.Warn("master data cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CachedSource) store(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("master data cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("master data cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(kind string, tenantID uuid.UUID, id string) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, kind, tenantID, id)
}
