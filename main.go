package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/storefront/modules/api"
	"github.com/example/storefront/modules/auth"
	"github.com/example/storefront/modules/cache"
	"github.com/example/storefront/modules/cart"
	"github.com/example/storefront/modules/catalog"
	"github.com/example/storefront/modules/contact"
	"github.com/example/storefront/modules/order"
	"github.com/example/storefront/modules/store"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env if present; real environment variables take precedence.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	log.Println("=== Storefront API ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	storeMod := store.NewModule(getEnv("DB_PATH", "storefront.db"))

	// The cache is optional: without REDIS_ADDR the catalog serves straight
	// from the database.
	var cacheMod *cache.Module
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cacheMod = cache.NewModule(addr, "storefront", getEnvDuration("CACHE_TTL", 5*time.Minute))
	}

	catalogMod := catalog.NewModule(storeMod, cacheMod)
	cartMod := cart.NewModule(storeMod)
	orderMod := order.NewModule(storeMod)
	contactMod := contact.NewModule(storeMod)

	jwtConfig := auth.DefaultJWTConfig()
	jwtConfig.SecretKey = getEnv("JWT_SECRET_KEY", jwtConfig.SecretKey)
	jwtConfig.TokenDuration = getEnvDuration("ADMIN_TOKEN_TTL", jwtConfig.TokenDuration)
	authMod := auth.NewModule(storeMod, jwtConfig, auth.BootstrapConfig{
		Username: os.Getenv("ADMIN_USERNAME"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	})

	apiMod := api.NewModule(getEnvInt("PORT", 3000), catalogMod, cartMod, orderMod, contactMod)

	// Registration order matters: the store (and cache) must be ready before
	// the modules built on top of them start.
	app.Register(storeMod)
	if cacheMod != nil {
		app.Register(cacheMod)
	}
	app.Register(catalogMod)
	app.Register(cartMod)
	app.Register(orderMod)
	app.Register(contactMod)
	app.Register(authMod)
	app.Register(apiMod)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Public Endpoints (/api/v1):")
	log.Println("  GET    /products                     - List products (category/featured/inStock filters)")
	log.Println("  GET    /products/trending            - Products carrying a badge")
	log.Println("  GET    /products/:id                 - Product details")
	log.Println("  GET    /categories                   - List categories")
	log.Println("  GET    /categories/:identifier       - Category with its products")
	log.Println("  GET    /search                       - Search products")
	log.Println("  GET    /cart/:sessionId              - Get cart")
	log.Println("  POST   /cart/:sessionId/items        - Add item")
	log.Println("  PUT    /cart/:sessionId/items/:pid   - Set line quantity")
	log.Println("  DELETE /cart/:sessionId/items/:pid   - Remove line")
	log.Println("  DELETE /cart/:sessionId              - Clear cart")
	log.Println("  POST   /orders                       - Checkout")
	log.Println("  GET    /orders/:orderNumber          - Order lookup")
	log.Println("  POST   /contact                      - Contact form")
	log.Println("  POST   /admin/login                  - Admin login")
	log.Println("")
	log.Println("Admin Endpoints (Bearer token, /api/v1/admin):")
	log.Println("  GET    /verify, /dashboard/stats, /sales, /contact")
	log.Println("  CRUD   /products, /orders (+ status, payment-status)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
	}
	return fallback
}
