package cart

import (
	"time"
)

// Cart holds a shopping session's line items. It is keyed by an opaque,
// client-chosen session identifier and created lazily on first access.
type Cart struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"uniqueIndex;size:100;not null" json:"sessionId"`
	Items     []Item    `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64   `gorm:"not null;default:0" json:"total"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Cart entity.
func (Cart) TableName() string {
	return "carts"
}

// Item is a single (product, quantity) line within a cart. A cart holds at
// most one line per product.
type Item struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CartID    string `gorm:"size:36;not null;uniqueIndex:idx_cart_product" json:"-"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_cart_product;index" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for the cart Item entity.
func (Item) TableName() string {
	return "cart_items"
}
