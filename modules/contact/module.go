package contact

import (
	"context"
	"fmt"
	"log"

	"github.com/example/storefront/modules/store"
	"github.com/go-monolith/mono"
)

// Module provides contact-message services as a mono module. It must be
// registered after the store module.
type Module struct {
	store   *store.Module
	service *Service
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates a new contact module.
func NewModule(storeMod *store.Module) *Module {
	return &Module{store: storeMod}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "contact"
}

// Start creates the service over the shared database.
func (m *Module) Start(_ context.Context) error {
	db := m.store.DB()
	if db == nil {
		return fmt.Errorf("store module not initialized")
	}
	m.service = NewService(db)
	log.Println("[contact] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[contact] Module stopped")
	return nil
}

// GetService returns the contact service.
func (m *Module) GetService() *Service {
	return m.service
}
