package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an order lookup misses.
var ErrNotFound = errors.New("order not found")

// StatusGroup is a per-status aggregation row.
type StatusGroup struct {
	Status  string  `json:"status"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DailySales is a per-day aggregation row. Date is formatted YYYY-MM-DD.
type DailySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// Repository provides database operations for orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves an order with its items by internal ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &o, nil
}

// FindByNumber retrieves an order with its items by customer-facing order
// number.
func (r *Repository) FindByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &o, nil
}

// List retrieves orders newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status string, limit int) ([]*Order, error) {
	query := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orders []*Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the fulfilment status and, when notes is non-nil,
// overwrites the order's notes.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string, notes *string) (*Order, error) {
	updates := map[string]any{"status": status, "updated_at": time.Now()}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdatePaymentStatus sets the payment status.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) (*Order, error) {
	updates := map[string]any{"payment_status": paymentStatus, "updated_at": time.Now()}

	result := r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Count returns the total number of orders.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of orders in a fulfilment status.
func (r *Repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Order{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// paidInRange scopes a query to paid orders within the optional date range.
func (r *Repository) paidInRange(ctx context.Context, start, end *time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&Order{}).Where("payment_status = ?", PaymentPaid)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	return query
}

// PaidTotals returns the revenue and order count over paid orders in the
// optional date range.
func (r *Repository) PaidTotals(ctx context.Context, start, end *time.Time) (float64, int64, error) {
	var row struct {
		Revenue float64
		Count   int64
	}
	err := r.paidInRange(ctx, start, end).
		Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate paid orders: %w", err)
	}
	return row.Revenue, row.Count, nil
}

// GroupByStatus aggregates paid orders in the optional date range by
// fulfilment status.
func (r *Repository) GroupByStatus(ctx context.Context, start, end *time.Time) ([]StatusGroup, error) {
	var rows []StatusGroup
	err := r.paidInRange(ctx, start, end).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by status: %w", err)
	}
	return rows, nil
}

// GroupByDay aggregates paid orders in the optional date range by calendar
// day, ascending, capped at the most recent 30 days with sales.
func (r *Repository) GroupByDay(ctx context.Context, start, end *time.Time) ([]DailySales, error) {
	var rows []DailySales
	err := r.paidInRange(ctx, start, end).
		Select("DATE(created_at) AS date, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("date ASC").
		Limit(30).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by day: %w", err)
	}
	return rows, nil
}

// Recent retrieves the n most recently created orders with their items.
func (r *Repository) Recent(ctx context.Context, n int) ([]*Order, error) {
	var orders []*Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Limit(n).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	return orders, nil
}
