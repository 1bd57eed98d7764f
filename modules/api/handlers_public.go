package api

import (
	"strconv"

	catalogdomain "github.com/example/storefront/domain/catalog"
	orderdomain "github.com/example/storefront/domain/order"
	"github.com/gofiber/fiber/v2"
)

// ListProducts handles GET /products.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	filter := catalogdomain.ProductFilter{
		Category:     c.Query("category"),
		FeaturedOnly: c.Query("featured") == "true",
		InStockOnly:  c.Query("inStock") == "true",
	}

	products, err := h.catalog.ListProducts(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"products": products, "count": len(products)})
}

// TrendingProducts handles GET /products/trending.
func (h *Handlers) TrendingProducts(c *fiber.Ctx) error {
	products, err := h.catalog.TrendingProducts(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"products": products, "count": len(products)})
}

// GetProduct handles GET /products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"product": product})
}

// ListCategories handles GET /categories.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"categories": categories, "count": len(categories)})
}

// GetCategory handles GET /categories/:identifier.
func (h *Handlers) GetCategory(c *fiber.Ctx) error {
	detail, err := h.catalog.GetCategory(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{
		"category":     detail.Category,
		"products":     detail.Products,
		"productCount": detail.ProductCount,
	})
}

// SearchProducts handles GET /search.
func (h *Handlers) SearchProducts(c *fiber.Ctx) error {
	q := catalogdomain.SearchQuery{
		Text:     c.Query("q"),
		Category: c.Query("category"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "minPrice must be a number")
		}
		q.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "maxPrice must be a number")
		}
		q.MaxPrice = &v
	}

	products, err := h.catalog.Search(c.UserContext(), q)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"products": products, "count": len(products)})
}

// GetCart handles GET /cart/:sessionId.
func (h *Handlers) GetCart(c *fiber.Ctx) error {
	view, err := h.carts.Get(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"cart": view})
}

// AddCartItem handles POST /cart/:sessionId/items.
func (h *Handlers) AddCartItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "Product ID is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.carts.AddItem(c.UserContext(), c.Params("sessionId"), req.ProductID, req.Quantity)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"cart": view})
}

// UpdateCartItem handles PUT /cart/:sessionId/items/:productId.
func (h *Handlers) UpdateCartItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Quantity == nil {
		return fail(c, fiber.StatusBadRequest, "Valid quantity is required")
	}

	view, err := h.carts.SetQuantity(c.UserContext(), c.Params("sessionId"), c.Params("productId"), *req.Quantity)
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"cart": view})
}

// RemoveCartItem handles DELETE /cart/:sessionId/items/:productId.
func (h *Handlers) RemoveCartItem(c *fiber.Ctx) error {
	view, err := h.carts.RemoveItem(c.UserContext(), c.Params("sessionId"), c.Params("productId"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"cart": view})
}

// ClearCart handles DELETE /cart/:sessionId.
func (h *Handlers) ClearCart(c *fiber.Ctx) error {
	view, err := h.carts.Clear(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"cart": view})
}

// CreateOrder handles POST /orders.
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SessionID == "" {
		return fail(c, fiber.StatusBadRequest, "Session ID is required")
	}

	info := orderdomain.CustomerInfo{
		Name:  req.CustomerInfo.Name,
		Email: req.CustomerInfo.Email,
		Phone: req.CustomerInfo.Phone,
	}
	if req.CustomerInfo.Address != nil {
		info.Address = orderdomain.Address{
			Street:  req.CustomerInfo.Address.Street,
			City:    req.CustomerInfo.Address.City,
			State:   req.CustomerInfo.Address.State,
			ZipCode: req.CustomerInfo.Address.ZipCode,
			Country: req.CustomerInfo.Address.Country,
		}
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), req.SessionID, info)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "order": order})
}

// GetOrderByNumber handles GET /orders/:orderNumber.
func (h *Handlers) GetOrderByNumber(c *fiber.Ctx) error {
	order, err := h.orders.GetByNumber(c.UserContext(), c.Params("orderNumber"))
	if err != nil {
		return h.handleError(c, err)
	}
	return ok(c, fiber.Map{"order": order})
}

// SubmitContact handles POST /contact.
func (h *Handlers) SubmitContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := h.contact.Submit(c.UserContext(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your message",
		"id":      msg.ID,
	})
}
