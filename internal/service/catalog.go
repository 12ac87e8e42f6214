package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/google/uuid"
)

type ProductsRepo interface {
	SaveProduct(ctx context.Context, p entities.Product) error
	GetProductByID(ctx context.Context, productID string) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	UpdateProduct(ctx context.Context, p entities.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type catalogService struct {
	logger *slog.Logger
	repo   ProductsRepo
	cache  Cache
}

func NewCatalogService(logger *slog.Logger, repo ProductsRepo, cache Cache) *catalogService {
	return &catalogService{
		logger: logger.With(slog.String("service", "catalog")),
		repo:   repo,
		cache:  cache,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	p.ID = uuid.NewString()
	if err := s.repo.SaveProduct(ctx, p); err != nil {
		return entities.Product{}, err
	}
	s.logger.Debug("product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, productID string) (entities.Product, error) {
	if data, ok := s.cache.Get(productID); ok {
		var product entities.Product
		if err := product.Unmarshal(data); err == nil {
			return product, nil
		}
		// Broken cache entry, fall through to the repo.
		s.cache.Delete(productID)
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return entities.Product{}, err
	}

	if data, err := product.Marshal(); err == nil {
		s.cache.Set(productID, data)
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogService) UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return entities.Product{}, err
	}
	s.cache.Delete(p.ID)
	return s.repo.GetProductByID(ctx, p.ID)
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.cache.Delete(productID)
	return nil
}

// WarmUpCache preloads the catalog so the first machine screen render
// after a deploy does not hit postgres for every tile.
func (s *catalogService) WarmUpCache(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm up catalog cache: %w", err)
	}
	for _, p := range products {
		if data, err := p.Marshal(); err == nil {
			s.cache.Set(p.ID, data)
		}
	}
	s.logger.Info("catalog cache warmed", slog.Int("products", len(products)))
	return nil
}
