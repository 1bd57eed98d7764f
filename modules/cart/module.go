package cart

import (
	"context"
	"fmt"
	"log"

	domain "github.com/example/storefront/domain/cart"
	catalogdomain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/modules/store"
	"github.com/go-monolith/mono"
)

// Module provides cart services as a mono module. It must be registered
// after the store module.
type Module struct {
	store   *store.Module
	service *Service
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates a new cart module.
func NewModule(storeMod *store.Module) *Module {
	return &Module{store: storeMod}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cart"
}

// Start creates the repositories and the service over the shared database.
func (m *Module) Start(_ context.Context) error {
	db := m.store.DB()
	if db == nil {
		return fmt.Errorf("store module not initialized")
	}
	m.service = NewService(domain.NewRepository(db), catalogdomain.NewRepository(db))
	log.Println("[cart] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[cart] Module stopped")
	return nil
}

// GetService returns the cart service.
func (m *Module) GetService() *Service {
	return m.service
}
