package catalog

import (
	"context"
	"fmt"
	"log"

	cartdomain "github.com/example/storefront/domain/cart"
	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/modules/cache"
	"github.com/example/storefront/modules/store"
	"github.com/go-monolith/mono"
)

// Module provides catalog services as a mono module. It must be registered
// after the store module (and the cache module, when caching is enabled) so
// the shared database is ready when it starts.
type Module struct {
	store    *store.Module
	cacheMod *cache.Module // nil when caching is disabled
	service  *Service
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates a new catalog module. cacheMod may be nil.
func NewModule(storeMod *store.Module, cacheMod *cache.Module) *Module {
	return &Module{
		store:    storeMod,
		cacheMod: cacheMod,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// Start creates the repositories and the service over the shared database.
func (m *Module) Start(_ context.Context) error {
	db := m.store.DB()
	if db == nil {
		return fmt.Errorf("store module not initialized")
	}

	var c *cache.Cache
	if m.cacheMod != nil {
		c = m.cacheMod.GetCache()
	}

	m.service = NewService(domain.NewRepository(db), cartdomain.NewRepository(db), c)

	if c != nil {
		log.Println("[catalog] Module started (cached reads enabled)")
	} else {
		log.Println("[catalog] Module started (caching disabled)")
	}
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[catalog] Module stopped")
	return nil
}

// GetService returns the catalog service.
func (m *Module) GetService() *Service {
	return m.service
}
