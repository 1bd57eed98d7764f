package order

import (
	"time"
)

// Fulfilment status values. The two status axes are independent and no
// transition table is enforced: an authorized caller may set any value at
// any time.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment status values.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// ValidStatus reports whether s is a known fulfilment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Address is a shipping address. All fields are required when an address is
// supplied at all.
type Address struct {
	Street  string `gorm:"size:200" json:"street,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:100" json:"state,omitempty"`
	ZipCode string `gorm:"size:20" json:"zipCode,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
}

// Empty reports whether no address field is set.
func (a Address) Empty() bool {
	return a == Address{}
}

// Complete reports whether every address field is set.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.ZipCode != "" && a.Country != ""
}

// CustomerInfo is the purchaser's contact and shipping information.
type CustomerInfo struct {
	Name    string  `gorm:"size:200;not null" json:"name"`
	Email   string  `gorm:"size:200;not null" json:"email"`
	Phone   string  `gorm:"size:50" json:"phone,omitempty"`
	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address,omitempty"`
}

// Order is a frozen snapshot of a cart at purchase time. Orders are created
// only by checkout, mutated only by admin status updates and never deleted.
type Order struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber   string       `gorm:"uniqueIndex;size:50;not null" json:"orderNumber"`
	Items         []Item       `gorm:"foreignKey:OrderID" json:"items"`
	Total         float64      `gorm:"not null" json:"total"`
	CustomerInfo  CustomerInfo `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo"`
	Status        string       `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus string       `gorm:"size:20;not null;index" json:"paymentStatus"`
	Notes         string       `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TableName returns the table name for the Order entity.
func (Order) TableName() string {
	return "orders"
}

// Item is a purchased line with name, price and image captured at purchase
// time, decoupled from the live product.
type Item struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"size:36;not null;index" json:"-"`
	ProductID string  `gorm:"size:36;not null" json:"productId"`
	Name      string  `gorm:"size:200;not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Image     string  `gorm:"size:500" json:"image"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for the order Item entity.
func (Item) TableName() string {
	return "order_items"
}
