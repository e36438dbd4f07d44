package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

const productCacheTTL = time.Minute

// CatalogService serves product and availability reads, cache-aside through
// redis when a client is wired.
type CatalogService struct {
	products    repository.ProductRepository
	redisClient *redis.Client
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CatalogService) Product(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.products.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return p, nil
}

func (s *CatalogService) Products(ctx context.Context, page, limit int) ([]domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.products.List(ctx, page, limit)
}

// WarmupProductCache primes the cache for a known-hot id set.
func (s *CatalogService) WarmupProductCache(ctx context.Context, productIDs []uint64) error {
	if s.redisClient == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range productIDs {
		id := id
		g.Go(func() error {
			p, err := s.products.ByID(ctx, id)
			if err != nil {
				log.Printf("cache warmup for product %d failed: %v", id, err)
				return nil
			}
			if p == nil {
				return nil
			}
			if data, err := json.Marshal(p); err == nil {
				s.redisClient.Set(ctx, fmt.Sprintf("product:%d", id), data, 5*time.Minute)
			}
			return nil
		})
	}
	return g.Wait()
}
