package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	cartdomain "github.com/example/storefront/domain/cart"
	catalogdomain "github.com/example/storefront/domain/catalog"
	domain "github.com/example/storefront/domain/order"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrEmptyCart is returned when checkout finds no purchasable lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidCustomer is returned when customer info fails validation.
	// The wrapped message carries the specific reason.
	ErrInvalidCustomer = errors.New("invalid customer info")
	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid status")
)

// InsufficientStockError reports the first product whose stock cannot cover
// its cart line. The whole checkout rolls back when this is returned.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Product)
}

// Service handles order placement and management. Checkout runs inside a
// single database transaction: stock decrements, order creation and cart
// clearing either all commit or all roll back.
type Service struct {
	db      *gorm.DB
	orders  *domain.Repository
	catalog *catalogdomain.Repository
}

// NewService creates a new order service.
func NewService(db *gorm.DB, orders *domain.Repository, catalog *catalogdomain.Repository) *Service {
	return &Service{
		db:      db,
		orders:  orders,
		catalog: catalog,
	}
}

// PlaceOrder converts a session's cart into an order.
//
// Each line's stock is decremented with a conditional update
// (stock_quantity >= quantity), so two concurrent checkouts cannot oversell
// the same product: the loser's update matches zero rows and its transaction
// rolls back. Lines whose product has been deleted are skipped, mirroring the
// cart's read-time stale-line filtering.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, info domain.CustomerInfo) (*domain.Order, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidCustomer)
	}
	if err := validateCustomer(info); err != nil {
		return nil, err
	}

	var created *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c cartdomain.Cart
		err := tx.Preload("Items").First(&c, "session_id = ?", sessionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(c.Items) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]domain.Item, 0, len(c.Items))
		var total float64

		for _, line := range c.Items {
			var p catalogdomain.Product
			err := tx.First(&p, "id = ?", line.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // stale line, product gone
				}
				return fmt.Errorf("failed to load product: %w", err)
			}

			result := tx.Model(&catalogdomain.Product{}).
				Where("id = ? AND stock_quantity >= ?", p.ID, line.Quantity).
				Updates(map[string]any{
					"stock_quantity": gorm.Expr("stock_quantity - ?", line.Quantity),
					"in_stock":       gorm.Expr("stock_quantity - ? > 0", line.Quantity),
					"updated_at":     time.Now(),
				})
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return &InsufficientStockError{Product: p.Name}
			}

			orderItems = append(orderItems, domain.Item{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Image:     p.Image,
				Quantity:  line.Quantity,
			})
			total += p.Price * float64(line.Quantity)
		}

		if len(orderItems) == 0 {
			return ErrEmptyCart // every line was stale
		}

		o := &domain.Order{
			ID:            uuid.New().String(),
			OrderNumber:   newOrderNumber(),
			Items:         orderItems,
			Total:         total,
			CustomerInfo:  info,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
		}
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&cartdomain.Item{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		updates := map[string]any{"total": 0, "updated_at": time.Now()}
		if err := tx.Model(&cartdomain.Cart{}).Where("id = ?", c.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to reset cart total: %w", err)
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByNumber retrieves an order by its customer-facing order number.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.orders.FindByNumber(ctx, orderNumber)
}

// GetByID retrieves an order by its internal ID.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// List retrieves orders newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, limit int) ([]*domain.Order, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if limit <= 0 {
		limit = 50
	}
	return s.orders.List(ctx, status, limit)
}

// UpdateStatus sets an order's fulfilment status. Any known value may follow
// any other; there is deliberately no transition table. Non-nil notes
// overwrite the order's notes.
func (s *Service) UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.orders.UpdateStatus(ctx, id, status, notes)
}

// UpdatePaymentStatus sets an order's payment status.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) (*domain.Order, error) {
	if !domain.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, paymentStatus)
	}
	return s.orders.UpdatePaymentStatus(ctx, id, paymentStatus)
}

// DashboardStats aggregates the figures shown on the admin dashboard.
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	totalProducts, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.catalog.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, _, err := s.orders.PaidTotals(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	processing, err := s.orders.CountByStatus(ctx, domain.StatusProcessing)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:    totalProducts,
		TotalOrders:      totalOrders,
		TotalCategories:  totalCategories,
		TotalRevenue:     revenue,
		PendingOrders:    pending,
		ProcessingOrders: processing,
		RecentOrders:     recent,
	}, nil
}

// SalesReport aggregates paid orders in the optional date range.
func (s *Service) SalesReport(ctx context.Context, start, end *time.Time) (*SalesReport, error) {
	revenue, count, err := s.orders.PaidTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var average float64
	if count > 0 {
		average = revenue / float64(count)
	}

	byStatus, err := s.orders.GroupByStatus(ctx, start, end)
	if err != nil {
		return nil, err
	}
	daily, err := s.orders.GroupByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		TotalRevenue:      revenue,
		TotalOrders:       count,
		AverageOrderValue: average,
		OrdersByStatus:    byStatus,
		DailySales:        daily,
	}, nil
}

// validateCustomer checks the required fields and the all-or-nothing
// shipping address rule.
func validateCustomer(info domain.CustomerInfo) error {
	if info.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomer)
	}
	if info.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidCustomer)
	}
	if !info.Address.Empty() && !info.Address.Complete() {
		return fmt.Errorf("%w: shipping address requires street, city, state, zip code and country", ErrInvalidCustomer)
	}
	return nil
}
