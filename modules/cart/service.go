package cart

import (
	"context"
	"errors"

	domain "github.com/example/storefront/domain/cart"
	catalogdomain "github.com/example/storefront/domain/catalog"
)

var (
	// ErrOutOfStock is returned when a product cannot cover the requested
	// quantity.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrItemNotFound is returned when a cart line does not exist.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrInvalidQuantity is returned when a quantity is out of range.
	ErrInvalidQuantity = errors.New("valid quantity is required")
)

// Service handles cart mutations. Every mutation recomputes the cached total
// from current catalog prices, and every response joins live product details.
// Lines whose product has been deleted are dropped from responses but left in
// storage; catalog deletion prunes them at the source.
type Service struct {
	carts    *domain.Repository
	products *catalogdomain.Repository
}

// NewService creates a new cart service.
func NewService(carts *domain.Repository, products *catalogdomain.Repository) *Service {
	return &Service{
		carts:    carts,
		products: products,
	}
}

// Get returns the cart for a session, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.carts.FindOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, c)
}

// AddItem adds a product to the cart, merging with an existing line for the
// same product. The requested quantity is validated against current stock;
// the cumulative line quantity is not re-validated, matching the storefront's
// read-time semantics.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock || p.StockQuantity < quantity {
		return nil, ErrOutOfStock
	}

	c, err := s.carts.FindOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, domain.Item{ProductID: productID, Quantity: quantity})
	}

	return s.saveAndView(ctx, c)
}

// SetQuantity overwrites a line's quantity. A quantity of zero removes the
// line. Stock is not re-checked at this step; checkout is the gate.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.carts.FindOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	if quantity == 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = quantity
	}

	return s.saveAndView(ctx, c)
}

// RemoveItem removes a product's line from the cart. Removing an absent line
// is a no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*View, error) {
	c, err := s.carts.FindOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	return s.saveAndView(ctx, c)
}

// Clear empties the cart. The cart record itself is kept.
func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.carts.FindOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Items = []domain.Item{}
	c.Total = 0
	if err := s.carts.SaveItems(ctx, c); err != nil {
		return nil, err
	}

	return &View{Items: []Line{}, Total: 0, ItemCount: 0}, nil
}

// saveAndView recomputes the total from current prices, persists the cart and
// builds the response view.
func (s *Service) saveAndView(ctx context.Context, c *domain.Cart) (*View, error) {
	lines, total, err := s.resolve(ctx, c.Items)
	if err != nil {
		return nil, err
	}

	c.Total = total
	if err := s.carts.SaveItems(ctx, c); err != nil {
		return nil, err
	}

	return newView(lines, total), nil
}

// buildView resolves the stored lines without mutating the cart.
func (s *Service) buildView(ctx context.Context, c *domain.Cart) (*View, error) {
	lines, total, err := s.resolve(ctx, c.Items)
	if err != nil {
		return nil, err
	}
	return newView(lines, total), nil
}

// resolve joins stored lines against the live catalog. Lines whose product no
// longer exists are silently dropped from the result and excluded from the
// total.
func (s *Service) resolve(ctx context.Context, items []domain.Item) ([]Line, float64, error) {
	lines := make([]Line, 0, len(items))
	var total float64

	for _, item := range items {
		p, err := s.products.FindProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalogdomain.ErrProductNotFound) {
				continue
			}
			return nil, 0, err
		}
		lines = append(lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  item.Quantity,
		})
		total += p.Price * float64(item.Quantity)
	}

	return lines, total, nil
}

func newView(lines []Line, total float64) *View {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return &View{Items: lines, Total: total, ItemCount: count}
}
