package cart

// Line is a cart line resolved against the live catalog.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// View is the cart shape returned by every cart operation.
type View struct {
	Items     []Line  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}
