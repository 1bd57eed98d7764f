package catalog

import (
	"time"
)

// Badge values a product may carry. An empty string means no badge.
const (
	BadgeNewRelease = "NEW RELEASE"
	BadgeTrending   = "TRENDING"
	BadgeSale       = "SALE"
)

// ValidBadge reports whether badge is empty or one of the known values.
func ValidBadge(badge string) bool {
	switch badge {
	case "", BadgeNewRelease, BadgeTrending, BadgeSale:
		return true
	}
	return false
}

// Product represents a catalog product.
//
// InStock mirrors StockQuantity > 0 and is kept in sync by every
// stock-affecting write.
type Product struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Price         float64   `gorm:"not null" json:"price"`
	Category      string    `gorm:"size:100;not null;index" json:"category"`
	Image         string    `gorm:"size:500;not null" json:"image"`
	Badge         string    `gorm:"size:20" json:"badge,omitempty"`
	Description   string    `gorm:"size:1000" json:"description"`
	InStock       bool      `gorm:"not null;default:true" json:"inStock"`
	Rating        float64   `gorm:"not null;default:0" json:"rating"`
	StockQuantity int       `gorm:"not null;default:0" json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Product entity.
func (Product) TableName() string {
	return "products"
}

// Category represents a product category. Products reference categories by
// uppercase name, not by foreign key.
type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Icon        string    `gorm:"size:100;not null" json:"icon"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Category entity.
func (Category) TableName() string {
	return "categories"
}
