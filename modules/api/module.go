package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/storefront/modules/auth"
	"github.com/example/storefront/modules/cart"
	"github.com/example/storefront/modules/catalog"
	"github.com/example/storefront/modules/contact"
	"github.com/example/storefront/modules/order"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module. It calls the auth module through its
// service container and the other modules through their services directly.
type APIModule struct {
	port    int
	app     *fiber.App
	catalog *catalog.Module
	carts   *cart.Module
	orders  *order.Module
	contact *contact.Module

	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(port int, catalogMod *catalog.Module, cartMod *cart.Module, orderMod *order.Module, contactMod *contact.Module) *APIModule {
	return &APIModule{
		port:    port,
		catalog: catalogMod,
		carts:   cartMod,
		orders:  orderMod,
		contact: contactMod,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(
		m.catalog.GetService(),
		m.carts.GetService(),
		m.orders.GetService(),
		m.contact.GetService(),
		m.authAdapter,
	)
	registerRoutes(m.app, handlers, m.authAdapter)
}

// registerRoutes mounts the routing table on the given app.
func registerRoutes(app *fiber.App, handlers *Handlers, authPort auth.AuthPort) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := app.Group("/api/v1")

	// Public catalog routes. Trending must be registered before :id.
	v1.Get("/products/trending", handlers.TrendingProducts)
	v1.Get("/products/:id", handlers.GetProduct)
	v1.Get("/products", handlers.ListProducts)
	v1.Get("/categories", handlers.ListCategories)
	v1.Get("/categories/:identifier", handlers.GetCategory)
	v1.Get("/search", handlers.SearchProducts)

	// Cart routes, keyed by the caller-supplied session ID.
	v1.Get("/cart/:sessionId", handlers.GetCart)
	v1.Post("/cart/:sessionId/items", handlers.AddCartItem)
	v1.Put("/cart/:sessionId/items/:productId", handlers.UpdateCartItem)
	v1.Delete("/cart/:sessionId/items/:productId", handlers.RemoveCartItem)
	v1.Delete("/cart/:sessionId", handlers.ClearCart)

	// Checkout and order lookup.
	v1.Post("/orders", handlers.CreateOrder)
	v1.Get("/orders/:orderNumber", handlers.GetOrderByNumber)

	v1.Post("/contact", handlers.SubmitContact)

	// Admin routes: login is public, the rest require a bearer token.
	admin := v1.Group("/admin")
	admin.Post("/login", handlers.Login)

	protected := admin.Group("")
	protected.Use(AdminMiddleware(authPort))
	protected.Get("/verify", handlers.Verify)
	protected.Get("/dashboard/stats", handlers.DashboardStats)
	protected.Get("/products", handlers.AdminListProducts)
	protected.Post("/products", handlers.CreateProduct)
	protected.Put("/products/:id", handlers.UpdateProduct)
	protected.Delete("/products/:id", handlers.DeleteProduct)
	protected.Get("/orders", handlers.ListOrders)
	protected.Get("/orders/:id", handlers.GetOrder)
	protected.Put("/orders/:id/status", handlers.UpdateOrderStatus)
	protected.Put("/orders/:id/payment-status", handlers.UpdatePaymentStatus)
	protected.Get("/sales", handlers.SalesReport)
	protected.Get("/contact", handlers.ListContactMessages)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
