package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository provides database operations for carts.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cart repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate retrieves the cart for a session, creating an empty one when
// none exists yet.
func (r *Repository) FindOrCreate(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).Preload("Items").First(&c, "session_id = ?", sessionID).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}

	c = Cart{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     []Item{},
		Total:     0,
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &c, nil
}

// Find retrieves the cart for a session, or nil when none exists.
func (r *Repository) Find(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).Preload("Items").First(&c, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &c, nil
}

// SaveItems replaces the cart's stored line items and cached total.
func (r *Repository) SaveItems(ctx context.Context, c *Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", c.ID).Delete(&Item{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		for i := range c.Items {
			c.Items[i].ID = 0
			c.Items[i].CartID = c.ID
		}
		if len(c.Items) > 0 {
			if err := tx.Create(&c.Items).Error; err != nil {
				return fmt.Errorf("failed to save cart items: %w", err)
			}
		}
		updates := map[string]any{"total": c.Total, "updated_at": time.Now()}
		if err := tx.Model(&Cart{}).Where("id = ?", c.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to save cart total: %w", err)
		}
		return nil
	})
}

// RemoveProductLines deletes every cart line referencing a product. Used when
// a product is removed from the catalog so carts do not accumulate dangling
// references.
func (r *Repository) RemoveProductLines(ctx context.Context, productID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&Item{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune cart lines: %w", result.Error)
	}
	return result.RowsAffected, nil
}
