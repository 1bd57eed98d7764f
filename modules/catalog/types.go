package catalog

import (
	"fmt"

	domain "github.com/example/storefront/domain/catalog"
)

// CreateProductInput is the input for creating a product.
type CreateProductInput struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	Badge         string  `json:"badge"`
	Description   string  `json:"description"`
	Rating        float64 `json:"rating"`
	StockQuantity int     `json:"stockQuantity"`
}

func (in CreateProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if in.Image == "" {
		return fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	if !domain.ValidBadge(in.Badge) {
		return fmt.Errorf("%w: unknown badge %q", ErrInvalidInput, in.Badge)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
	}
	return nil
}

// UpdateProductInput is the input for a partial product update. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	Name          *string  `json:"name,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Badge         *string  `json:"badge,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	StockQuantity *int     `json:"stockQuantity,omitempty"`
}
