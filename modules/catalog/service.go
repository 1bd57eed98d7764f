package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	cartdomain "github.com/example/storefront/domain/cart"
	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/modules/cache"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidInput is returned when a request fails validation. The wrapped
// message carries the specific reason.
var ErrInvalidInput = errors.New("invalid input")

// Service handles catalog business logic. Product reads go through the
// cache when one is configured; concurrent misses for the same key are
// collapsed into a single database query.
type Service struct {
	repo  *domain.Repository
	carts *cartdomain.Repository
	cache *cache.Cache // nil when caching is disabled
	group singleflight.Group
}

// NewService creates a new catalog service. The cache may be nil.
func NewService(repo *domain.Repository, carts *cartdomain.Repository, c *cache.Cache) *Service {
	return &Service{
		repo:  repo,
		carts: carts,
		cache: c,
	}
}

// GetProduct retrieves a single product.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if s.cache == nil {
		return s.repo.FindProductByID(ctx, id)
	}

	key := "product:" + id
	var cached domain.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		p, err := s.repo.FindProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, p); err != nil {
			log.Printf("[catalog] cache set failed for %s: %v", key, err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// ListProducts retrieves products matching the filter, newest first.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if s.cache == nil {
		return s.repo.ListProducts(ctx, filter)
	}

	key := fmt.Sprintf("products:%s:%t:%t", strings.ToUpper(filter.Category), filter.FeaturedOnly, filter.InStockOnly)
	var cached []*domain.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		products, err := s.repo.ListProducts(ctx, filter)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, products); err != nil {
			log.Printf("[catalog] cache set failed for %s: %v", key, err)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

// TrendingProducts retrieves the products carrying a badge, newest first.
func (s *Service) TrendingProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.ListProducts(ctx, domain.ProductFilter{FeaturedOnly: true})
}

// Search retrieves products matching the query. At least one criterion is
// required.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.Product, error) {
	if q.Empty() {
		return nil, fmt.Errorf("%w: provide a search query, category, or price range", ErrInvalidInput)
	}
	return s.repo.SearchProducts(ctx, q)
}

// CreateProduct validates and persists a new product.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Price:         in.Price,
		Category:      strings.ToUpper(in.Category),
		Image:         in.Image,
		Badge:         in.Badge,
		Description:   in.Description,
		InStock:       in.StockQuantity > 0,
		Rating:        in.Rating,
		StockQuantity: in.StockQuantity,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx)
	return p, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		p.Name = *in.Name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
		}
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = strings.ToUpper(*in.Category)
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Badge != nil {
		if !domain.ValidBadge(*in.Badge) {
			return nil, fmt.Errorf("%w: unknown badge %q", ErrInvalidInput, *in.Badge)
		}
		p.Badge = *in.Badge
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
		}
		p.Rating = *in.Rating
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
		}
		p.StockQuantity = *in.StockQuantity
		p.InStock = *in.StockQuantity > 0
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx)
	return p, nil
}

// DeleteProduct removes a product and prunes cart lines that reference it,
// so carts do not keep dangling references to deleted products.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	pruned, err := s.carts.RemoveProductLines(ctx, id)
	if err != nil {
		return err
	}
	if pruned > 0 {
		log.Printf("[catalog] Pruned %d cart line(s) referencing deleted product %s", pruned, id)
	}

	s.invalidateProducts(ctx)
	return nil
}

// ListCategories retrieves all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// CategoryDetail is a category together with its products.
type CategoryDetail struct {
	Category     *domain.Category
	Products     []*domain.Product
	ProductCount int
}

// GetCategory retrieves a category by ID, slug or name, with its products.
func (s *Service) GetCategory(ctx context.Context, identifier string) (*CategoryDetail, error) {
	c, err := s.repo.FindCategory(ctx, identifier)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ProductsByCategoryName(ctx, c.Name)
	if err != nil {
		return nil, err
	}

	return &CategoryDetail{
		Category:     c,
		Products:     products,
		ProductCount: len(products),
	}, nil
}

// invalidateProducts drops all cached product reads after a write.
func (s *Service) invalidateProducts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "product*"); err != nil {
		log.Printf("[catalog] cache invalidation failed: %v", err)
	}
}
