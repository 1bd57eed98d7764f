package order

import (
	"context"
	"fmt"
	"log"

	catalogdomain "github.com/example/storefront/domain/catalog"
	domain "github.com/example/storefront/domain/order"
	"github.com/example/storefront/modules/store"
	"github.com/go-monolith/mono"
)

// Module provides order services as a mono module. It must be registered
// after the store module; checkout needs the shared database directly for
// its transaction.
type Module struct {
	store   *store.Module
	service *Service
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates a new order module.
func NewModule(storeMod *store.Module) *Module {
	return &Module{store: storeMod}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "order"
}

// Start creates the repositories and the service over the shared database.
func (m *Module) Start(_ context.Context) error {
	db := m.store.DB()
	if db == nil {
		return fmt.Errorf("store module not initialized")
	}
	m.service = NewService(db, domain.NewRepository(db), catalogdomain.NewRepository(db))
	log.Println("[order] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[order] Module stopped")
	return nil
}

// GetService returns the order service.
func (m *Module) GetService() *Service {
	return m.service
}
