package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
	"github.com/sujatha-boutique/storefront/pkg/logger"
)

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 5 * time.Minute
)

// CachedProductRepository caches the full catalog read in Redis. The shop
// page fetches every product on each render, so one hot key covers the
// dominant read path; mutations drop the key. Cache failures are logged
// and the call falls through to the wrapped repository.
type CachedProductRepository struct {
	domain.ProductRepository
	redis *redis.Client
}

func NewCachedProductRepository(inner domain.ProductRepository, redisClient *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{ProductRepository: inner, redis: redisClient}
}

func (r *CachedProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	cached, err := r.redis.Get(ctx, catalogCacheKey).Bytes()
	if err == nil && len(cached) > 0 {
		var products []domain.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			logger.Debug(ctx).Int("products", len(products)).Msg("Catalog cache hit")
			return products, nil
		}
	}

	products, err := r.ProductRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(products); err == nil {
		if err := r.redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to cache catalog")
		}
	}

	return products, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.ProductRepository.Create(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.ProductRepository.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) invalidate(ctx context.Context) {
	if err := r.redis.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to invalidate catalog cache")
	}
}
