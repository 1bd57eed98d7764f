package api

import (
	"strconv"
	"time"

	admindomain "github.com/example/storefront/domain/admin"
	catalogdomain "github.com/example/storefront/domain/catalog"
	catalogsvc "github.com/example/storefront/modules/catalog"
	"github.com/gofiber/fiber/v2"
)

// Login handles POST /admin/login. Every authentication failure maps to the
// same 401 so usernames cannot be probed.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Username and password are required")
	}

	resp, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return ok(c, fiber.Map{
		"token":     resp.Token,
		"expiresIn": resp.ExpiresIn,
		"admin":     resp.Admin,
	})
}

// Verify handles GET /admin/verify. The middleware has already validated the
// token; this just echoes the claims back.
func (h *Handlers) Verify(c *fiber.Ctx) error {
	claims, _ := c.Locals(AdminContextKey).(*admindomain.Claims)
	if claims == nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return ok(c, fiber.Map{"admin": claims})
}

// DashboardStats handles GET /admin/dashboard/stats.
func (h *Handlers) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.orders.DashboardStats(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"stats": stats})
}

// AdminListProducts handles GET /admin/products. Unlike the public listing it
// returns every product regardless of stock.
func (h *Handlers) AdminListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext(), catalogdomain.ProductFilter{})
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"products": products, "count": len(products)})
}

// CreateProduct handles POST /admin/products.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var in catalogsvc.CreateProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": product})
}

// UpdateProduct handles PUT /admin/products/:id.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	var in catalogsvc.UpdateProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"product": product})
}

// DeleteProduct handles DELETE /admin/products/:id.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"message": "Product deleted"})
}

// ListOrders handles GET /admin/orders.
func (h *Handlers) ListOrders(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "limit must be a number")
		}
		limit = v
	}

	orders, err := h.orders.List(c.UserContext(), c.Query("status"), limit)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"orders": orders, "count": len(orders)})
}

// GetOrder handles GET /admin/orders/:id.
func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"order": order})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status.
func (h *Handlers) UpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, req.Notes)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"order": order})
}

// UpdatePaymentStatus handles PUT /admin/orders/:id/payment-status.
func (h *Handlers) UpdatePaymentStatus(c *fiber.Ctx) error {
	var req UpdatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	order, err := h.orders.UpdatePaymentStatus(c.UserContext(), c.Params("id"), req.PaymentStatus)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"order": order})
}

// SalesReport handles GET /admin/sales. Dates are inclusive calendar days in
// YYYY-MM-DD form; the end date is extended to the end of its day.
func (h *Handlers) SalesReport(c *fiber.Ctx) error {
	var start, end *time.Time

	if raw := c.Query("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "startDate must be YYYY-MM-DD")
		}
		start = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "endDate must be YYYY-MM-DD")
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	report, err := h.orders.SalesReport(c.UserContext(), start, end)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"report": report})
}

// ListContactMessages handles GET /admin/contact.
func (h *Handlers) ListContactMessages(c *fiber.Ctx) error {
	messages, err := h.contact.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"messages": messages, "count": len(messages)})
}
