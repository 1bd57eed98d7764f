package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a product lookup misses.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category lookup misses.
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
	InStockOnly  bool
}

// SearchQuery holds the criteria for a product search.
type SearchQuery struct {
	Text     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Empty reports whether no criterion is set.
func (q SearchQuery) Empty() bool {
	return q.Text == "" && q.Category == "" && q.MinPrice == nil && q.MaxPrice == nil
}

// Repository provides database operations for products and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProduct saves a new product.
func (r *Repository) CreateProduct(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *Repository) FindProductByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// ListProducts retrieves products matching the filter, newest first.
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", strings.ToUpper(filter.Category))
	}
	if filter.FeaturedOnly {
		query = query.Where("badge <> ''")
	}
	if filter.InStockOnly {
		query = query.Where("in_stock = ?", true)
	}

	var products []*Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// SearchProducts retrieves products matching the search query, newest first.
// Text matching is a case-insensitive substring match over name, description
// and category.
func (r *Repository) SearchProducts(ctx context.Context, q SearchQuery) ([]*Product, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if q.Text != "" {
		pattern := "%" + strings.ToLower(q.Text) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if q.Category != "" {
		query = query.Where("category = ?", strings.ToUpper(q.Category))
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}

	var products []*Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// UpdateProduct persists changes to an existing product.
func (r *Repository) UpdateProduct(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CountProducts returns the total number of products.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// FindCategory retrieves a category by ID, slug or name.
func (r *Repository) FindCategory(ctx context.Context, identifier string) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).
		Where("id = ? OR slug = ? OR name = ?",
			identifier, strings.ToLower(identifier), strings.ToUpper(identifier)).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &c, nil
}

// ProductsByCategoryName retrieves the products tagged with a category name.
func (r *Repository) ProductsByCategoryName(ctx context.Context, name string) ([]*Product, error) {
	var products []*Product
	if err := r.db.WithContext(ctx).Where("category = ?", name).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find category products: %w", err)
	}
	return products, nil
}

// CountCategories returns the total number of categories.
func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
