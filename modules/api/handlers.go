package api

import (
	"errors"
	"fmt"
	"log"

	catalogdomain "github.com/example/storefront/domain/catalog"
	orderdomain "github.com/example/storefront/domain/order"
	"github.com/example/storefront/modules/auth"
	cartsvc "github.com/example/storefront/modules/cart"
	catalogsvc "github.com/example/storefront/modules/catalog"
	contactsvc "github.com/example/storefront/modules/contact"
	ordersvc "github.com/example/storefront/modules/order"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	catalog *catalogsvc.Service
	carts   *cartsvc.Service
	orders  *ordersvc.Service
	contact *contactsvc.Service
	auth    auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	catalog *catalogsvc.Service,
	carts *cartsvc.Service,
	orders *ordersvc.Service,
	contact *contactsvc.Service,
	authPort auth.AuthPort,
) *Handlers {
	return &Handlers{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		contact: contact,
		auth:    authPort,
	}
}

// ok writes a success envelope merged with the given fields.
func ok(c *fiber.Ctx, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(body)
}

// fail writes an error envelope with the given status and message.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// handleError maps a service error to the HTTP error taxonomy: validation
// and business-rule violations are 400, lookup misses 404, bad credentials
// 401, everything else an opaque 500.
func (h *Handlers) handleError(c *fiber.Ctx, err error) error {
	var stockErr *ordersvc.InsufficientStockError

	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound):
		return fail(c, fiber.StatusNotFound, "Product not found")
	case errors.Is(err, catalogdomain.ErrCategoryNotFound):
		return fail(c, fiber.StatusNotFound, "Category not found")
	case errors.Is(err, orderdomain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, cartsvc.ErrItemNotFound):
		return fail(c, fiber.StatusNotFound, "Item not found in cart")
	case errors.Is(err, cartsvc.ErrOutOfStock):
		return fail(c, fiber.StatusBadRequest, "Product is out of stock")
	case errors.Is(err, cartsvc.ErrInvalidQuantity):
		return fail(c, fiber.StatusBadRequest, "Valid quantity is required")
	case errors.Is(err, ordersvc.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "Cart is empty")
	case errors.As(err, &stockErr):
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", stockErr.Product))
	case errors.Is(err, ordersvc.ErrInvalidCustomer),
		errors.Is(err, ordersvc.ErrInvalidStatus),
		errors.Is(err, catalogsvc.ErrInvalidInput),
		errors.Is(err, contactsvc.ErrMissingFields):
		return fail(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[api] Internal error: %v", err)
		return fail(c, fiber.StatusInternalServerError, "An internal error occurred")
	}
}
