package order

import (
	domain "github.com/example/storefront/domain/order"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalProducts    int64           `json:"totalProducts"`
	TotalOrders      int64           `json:"totalOrders"`
	TotalCategories  int64           `json:"totalCategories"`
	TotalRevenue     float64         `json:"totalRevenue"`
	PendingOrders    int64           `json:"pendingOrders"`
	ProcessingOrders int64           `json:"processingOrders"`
	RecentOrders     []*domain.Order `json:"recentOrders"`
}

// SalesReport aggregates paid orders over a date range.
type SalesReport struct {
	TotalRevenue      float64              `json:"totalRevenue"`
	TotalOrders       int64                `json:"totalOrders"`
	AverageOrderValue float64              `json:"averageOrderValue"`
	OrdersByStatus    []domain.StatusGroup `json:"ordersByStatus"`
	DailySales        []domain.DailySales  `json:"dailySales"`
}
