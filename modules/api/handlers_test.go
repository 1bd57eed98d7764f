package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	admindomain "github.com/example/storefront/domain/admin"
	cartdomain "github.com/example/storefront/domain/cart"
	catalogdomain "github.com/example/storefront/domain/catalog"
	contactdomain "github.com/example/storefront/domain/contact"
	orderdomain "github.com/example/storefront/domain/order"
	cartsvc "github.com/example/storefront/modules/cart"
	catalogsvc "github.com/example/storefront/modules/catalog"
	contactsvc "github.com/example/storefront/modules/contact"
	ordersvc "github.com/example/storefront/modules/order"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp wires real services over an in-memory database behind the full
// routing table. Auth is mocked: "good-token" is the only valid bearer.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&catalogdomain.Product{}, &catalogdomain.Category{},
		&cartdomain.Cart{}, &cartdomain.Item{},
		&orderdomain.Order{}, &orderdomain.Item{},
		&contactdomain.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	catalogRepo := catalogdomain.NewRepository(db)
	cartRepo := cartdomain.NewRepository(db)
	orderRepo := orderdomain.NewRepository(db)

	mockAuth := &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*admindomain.Claims, error) {
			if token == "good-token" {
				return &admindomain.Claims{AdminID: "admin-1", Username: "storeadmin", Role: admindomain.RoleSuperadmin}, nil
			}
			return nil, fmt.Errorf("token validation failed")
		},
	}

	handlers := NewHandlers(
		catalogsvc.NewService(catalogRepo, cartRepo, nil),
		cartsvc.NewService(cartRepo, catalogRepo),
		ordersvc.NewService(db, orderRepo, catalogRepo),
		contactsvc.NewService(db),
		mockAuth,
	)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	registerRoutes(app, handlers, mockAuth)
	return app, db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int, badge string) *catalogdomain.Product {
	t.Helper()

	p := &catalogdomain.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Price:         price,
		Category:      "TEST",
		Image:         "/images/test.png",
		Badge:         badge,
		InStock:       stock > 0,
		StockQuantity: stock,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return p
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}

	var parsed map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("failed to parse response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, parsed
}

func TestRoutes_TrendingBeforeProductID(t *testing.T) {
	app, db := setupApp(t)

	seedProduct(t, db, "Plain", 10, 5, "")
	seedProduct(t, db, "Hot Item", 20, 5, catalogdomain.BadgeTrending)

	// /products/trending must not be swallowed by /products/:id.
	status, body := doJSON(t, app, "GET", "/api/v1/products/trending", nil, "")
	if status != http.StatusOK {
		t.Fatalf("GET /products/trending status = %d, want 200", status)
	}
	if body["count"].(float64) != 1 {
		t.Errorf("trending count = %v, want 1", body["count"])
	}

	status, body = doJSON(t, app, "GET", "/api/v1/products/no-such-id", nil, "")
	if status != http.StatusNotFound {
		t.Errorf("GET /products/no-such-id status = %d, want 404", status)
	}
	if body["success"] != false {
		t.Errorf("error envelope success = %v, want false", body["success"])
	}
	if body["message"] != "Product not found" {
		t.Errorf("error message = %v, want %q", body["message"], "Product not found")
	}
}

func TestRoutes_CartAndCheckoutFlow(t *testing.T) {
	app, db := setupApp(t)
	p := seedProduct(t, db, "Widget", 50, 4, "")

	status, body := doJSON(t, app, "POST", "/api/v1/cart/session-1/items",
		AddItemRequest{ProductID: p.ID, Quantity: 2}, "")
	if status != http.StatusOK {
		t.Fatalf("add item status = %d, body = %v", status, body)
	}
	cart := body["cart"].(map[string]any)
	if cart["total"].(float64) != 100 {
		t.Errorf("cart total = %v, want 100", cart["total"])
	}

	// Over-stock add is rejected with the business-rule message.
	status, body = doJSON(t, app, "POST", "/api/v1/cart/session-1/items",
		AddItemRequest{ProductID: p.ID, Quantity: 10}, "")
	if status != http.StatusBadRequest {
		t.Errorf("over-stock add status = %d, want 400", status)
	}
	if body["message"] != "Product is out of stock" {
		t.Errorf("over-stock message = %v", body["message"])
	}

	status, body = doJSON(t, app, "POST", "/api/v1/orders", CreateOrderRequest{
		SessionID: "session-1",
		CustomerInfo: CustomerInfoRequest{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		},
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("checkout status = %d, body = %v", status, body)
	}
	order := body["order"].(map[string]any)
	orderNumber := order["orderNumber"].(string)
	if order["total"].(float64) != 100 {
		t.Errorf("order total = %v, want 100", order["total"])
	}

	status, _ = doJSON(t, app, "GET", "/api/v1/orders/"+orderNumber, nil, "")
	if status != http.StatusOK {
		t.Errorf("order lookup status = %d, want 200", status)
	}

	// A second checkout on the now-empty cart fails.
	status, body = doJSON(t, app, "POST", "/api/v1/orders", CreateOrderRequest{
		SessionID:    "session-1",
		CustomerInfo: CustomerInfoRequest{Name: "Ada", Email: "ada@example.com"},
	}, "")
	if status != http.StatusBadRequest {
		t.Errorf("empty-cart checkout status = %d, want 400", status)
	}
	if body["message"] != "Cart is empty" {
		t.Errorf("empty-cart message = %v", body["message"])
	}
}

func TestRoutes_AdminRequiresToken(t *testing.T) {
	app, db := setupApp(t)
	seedProduct(t, db, "Widget", 10, 5, "")

	status, _ := doJSON(t, app, "GET", "/api/v1/admin/products", nil, "")
	if status != http.StatusUnauthorized {
		t.Errorf("admin without token status = %d, want 401", status)
	}

	status, _ = doJSON(t, app, "GET", "/api/v1/admin/products", nil, "bad-token")
	if status != http.StatusUnauthorized {
		t.Errorf("admin with bad token status = %d, want 401", status)
	}

	status, body := doJSON(t, app, "GET", "/api/v1/admin/products", nil, "good-token")
	if status != http.StatusOK {
		t.Fatalf("admin with good token status = %d, want 200", status)
	}
	if body["count"].(float64) != 1 {
		t.Errorf("admin product count = %v, want 1", body["count"])
	}
}

func TestRoutes_AdminProductLifecycle(t *testing.T) {
	app, db := setupApp(t)

	status, body := doJSON(t, app, "POST", "/api/v1/admin/products", catalogsvc.CreateProductInput{
		Name:          "New Gadget",
		Price:         79.99,
		Category:      "gadgets",
		Image:         "/images/gadget.png",
		StockQuantity: 7,
	}, "good-token")
	if status != http.StatusCreated {
		t.Fatalf("create product status = %d, body = %v", status, body)
	}
	product := body["product"].(map[string]any)
	id := product["id"].(string)
	if product["category"] != "GADGETS" {
		t.Errorf("category = %v, want GADGETS", product["category"])
	}

	status, body = doJSON(t, app, "PUT", "/api/v1/admin/products/"+id,
		map[string]any{"price": 59.99}, "good-token")
	if status != http.StatusOK {
		t.Fatalf("update product status = %d, body = %v", status, body)
	}
	if body["product"].(map[string]any)["price"].(float64) != 59.99 {
		t.Errorf("updated price = %v, want 59.99", body["product"].(map[string]any)["price"])
	}

	// Invalid payloads get the validation message back.
	status, body = doJSON(t, app, "POST", "/api/v1/admin/products",
		catalogsvc.CreateProductInput{Name: "No Image", Price: 1, Category: "X"}, "good-token")
	if status != http.StatusBadRequest {
		t.Errorf("invalid create status = %d, want 400", status)
	}

	status, _ = doJSON(t, app, "DELETE", "/api/v1/admin/products/"+id, nil, "good-token")
	if status != http.StatusOK {
		t.Errorf("delete product status = %d, want 200", status)
	}

	var count int64
	if err := db.Model(&catalogdomain.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	if count != 0 {
		t.Errorf("products after delete = %d, want 0", count)
	}
}

func TestRoutes_ContactSubmission(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, "POST", "/api/v1/contact", ContactRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Nice store",
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("contact status = %d, body = %v", status, body)
	}

	status, body = doJSON(t, app, "POST", "/api/v1/contact", ContactRequest{Name: "Ada"}, "")
	if status != http.StatusBadRequest {
		t.Errorf("incomplete contact status = %d, want 400", status)
	}

	// The submission shows up on the admin side.
	status, body = doJSON(t, app, "GET", "/api/v1/admin/contact", nil, "good-token")
	if status != http.StatusOK {
		t.Fatalf("admin contact list status = %d", status)
	}
	if body["count"].(float64) != 1 {
		t.Errorf("contact count = %v, want 1", body["count"])
	}
}
