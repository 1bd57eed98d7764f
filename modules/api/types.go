package api

// Request bodies. Response shapes are built inline with fiber.Map so every
// payload carries the `success` envelope.

// AddItemRequest adds a product to a cart.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest overwrites a cart line's quantity.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// CreateOrderRequest places an order from a session's cart.
type CreateOrderRequest struct {
	SessionID    string              `json:"sessionId"`
	CustomerInfo CustomerInfoRequest `json:"customerInfo"`
}

// CustomerInfoRequest is the purchaser's contact and shipping information.
type CustomerInfoRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address *AddressRequest `json:"address"`
}

// AddressRequest is an optional shipping address.
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// LoginRequest is an admin login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateStatusRequest sets an order's fulfilment status.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdatePaymentStatusRequest sets an order's payment status.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
