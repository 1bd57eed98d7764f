package catalog

import (
	"context"
	"errors"
	"testing"

	cartdomain "github.com/example/storefront/domain/cart"
	domain "github.com/example/storefront/domain/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupService creates a catalog service over an in-memory database, caching
// disabled.
func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&domain.Product{}, &domain.Category{}, &cartdomain.Cart{}, &cartdomain.Item{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	svc := NewService(domain.NewRepository(db), cartdomain.NewRepository(db), nil)
	return svc, db
}

func createProduct(t *testing.T, svc *Service, in CreateProductInput) *domain.Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	return p
}

func TestService_CreateProduct(t *testing.T) {
	svc, _ := setupService(t)

	p := createProduct(t, svc, CreateProductInput{
		Name:          "Mechanical Keyboard",
		Price:         129.99,
		Category:      "electronics",
		Image:         "/images/keyboard.png",
		Badge:         domain.BadgeNewRelease,
		Rating:        4.5,
		StockQuantity: 10,
	})

	if p.ID == "" {
		t.Error("CreateProduct() did not assign an ID")
	}
	if p.Category != "ELECTRONICS" {
		t.Errorf("category = %v, want ELECTRONICS", p.Category)
	}
	if !p.InStock {
		t.Error("InStock should be true when stock is positive")
	}
}

func TestService_CreateProduct_Validation(t *testing.T) {
	svc, _ := setupService(t)

	valid := CreateProductInput{
		Name:          "Widget",
		Price:         9.99,
		Category:      "TOOLS",
		Image:         "/images/widget.png",
		StockQuantity: 5,
	}

	tests := []struct {
		name   string
		mutate func(in *CreateProductInput)
	}{
		{"missing name", func(in *CreateProductInput) { in.Name = "" }},
		{"negative price", func(in *CreateProductInput) { in.Price = -1 }},
		{"missing category", func(in *CreateProductInput) { in.Category = "" }},
		{"missing image", func(in *CreateProductInput) { in.Image = "" }},
		{"unknown badge", func(in *CreateProductInput) { in.Badge = "BOGOF" }},
		{"rating above 5", func(in *CreateProductInput) { in.Rating = 5.5 }},
		{"negative stock", func(in *CreateProductInput) { in.StockQuantity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.CreateProduct(context.Background(), in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CreateProduct() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestService_CreateProduct_ZeroStock(t *testing.T) {
	svc, _ := setupService(t)

	p := createProduct(t, svc, CreateProductInput{
		Name:     "Sold Out Item",
		Price:    5,
		Category: "MISC",
		Image:    "/images/x.png",
	})
	if p.InStock {
		t.Error("InStock should be false when stock is zero")
	}
}

func TestService_UpdateProduct_Partial(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	p := createProduct(t, svc, CreateProductInput{
		Name:          "Old Name",
		Price:         10,
		Category:      "BOOKS",
		Image:         "/images/book.png",
		StockQuantity: 3,
	})

	newPrice := 12.5
	zeroStock := 0
	updated, err := svc.UpdateProduct(ctx, p.ID, UpdateProductInput{
		Price:         &newPrice,
		StockQuantity: &zeroStock,
	})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}

	if updated.Name != "Old Name" {
		t.Errorf("name changed to %v, wanted unchanged", updated.Name)
	}
	if updated.Price != 12.5 {
		t.Errorf("price = %v, want 12.5", updated.Price)
	}
	if updated.InStock {
		t.Error("InStock should flip to false when stock is set to zero")
	}

	empty := ""
	if _, err := svc.UpdateProduct(ctx, p.ID, UpdateProductInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("UpdateProduct() with empty name error = %v, want ErrInvalidInput", err)
	}

	if _, err := svc.UpdateProduct(ctx, "no-such-id", UpdateProductInput{}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("UpdateProduct() on missing product error = %v, want ErrProductNotFound", err)
	}
}

func TestService_DeleteProduct_PrunesCartLines(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	p := createProduct(t, svc, CreateProductInput{
		Name:          "Doomed Product",
		Price:         20,
		Category:      "MISC",
		Image:         "/images/doomed.png",
		StockQuantity: 5,
	})

	carts := cartdomain.NewRepository(db)
	c, err := carts.FindOrCreate(ctx, "session-1")
	if err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	c.Items = []cartdomain.Item{{ProductID: p.ID, Quantity: 2}}
	c.Total = 40
	if err := carts.SaveItems(ctx, c); err != nil {
		t.Fatalf("SaveItems() error = %v", err)
	}

	if err := svc.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}

	var remaining int64
	if err := db.Model(&cartdomain.Item{}).Where("product_id = ?", p.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("failed to count cart lines: %v", err)
	}
	if remaining != 0 {
		t.Errorf("cart lines referencing deleted product = %d, want 0", remaining)
	}

	if _, err := svc.GetProduct(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("GetProduct() after delete error = %v, want ErrProductNotFound", err)
	}

	if err := svc.DeleteProduct(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("second DeleteProduct() error = %v, want ErrProductNotFound", err)
	}
}

func TestService_ListProducts_Filters(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	createProduct(t, svc, CreateProductInput{
		Name: "Badged In Stock", Price: 10, Category: "A", Image: "/a.png",
		Badge: domain.BadgeTrending, StockQuantity: 5,
	})
	createProduct(t, svc, CreateProductInput{
		Name: "Plain Out Of Stock", Price: 20, Category: "B", Image: "/b.png",
	})

	all, err := svc.ListProducts(ctx, domain.ProductFilter{})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListProducts() returned %d products, want 2", len(all))
	}

	featured, err := svc.TrendingProducts(ctx)
	if err != nil {
		t.Fatalf("TrendingProducts() error = %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "Badged In Stock" {
		t.Errorf("TrendingProducts() = %v, want only the badged product", featured)
	}

	inStock, err := svc.ListProducts(ctx, domain.ProductFilter{InStockOnly: true})
	if err != nil {
		t.Fatalf("ListProducts(inStock) error = %v", err)
	}
	if len(inStock) != 1 || inStock[0].Name != "Badged In Stock" {
		t.Errorf("ListProducts(inStock) = %v, want only the stocked product", inStock)
	}

	// Category filtering is case-insensitive.
	catA, err := svc.ListProducts(ctx, domain.ProductFilter{Category: "a"})
	if err != nil {
		t.Fatalf("ListProducts(category) error = %v", err)
	}
	if len(catA) != 1 {
		t.Errorf("ListProducts(category=a) returned %d products, want 1", len(catA))
	}
}

func TestService_Search(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	createProduct(t, svc, CreateProductInput{
		Name: "Noise Cancelling Headphones", Price: 199, Category: "AUDIO",
		Image: "/h.png", Description: "over-ear", StockQuantity: 3,
	})
	createProduct(t, svc, CreateProductInput{
		Name: "Desk Lamp", Price: 25, Category: "HOME", Image: "/l.png", StockQuantity: 8,
	})

	if _, err := svc.Search(ctx, domain.SearchQuery{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Search() with no criteria error = %v, want ErrInvalidInput", err)
	}

	byText, err := svc.Search(ctx, domain.SearchQuery{Text: "headph"})
	if err != nil {
		t.Fatalf("Search(text) error = %v", err)
	}
	if len(byText) != 1 || byText[0].Name != "Noise Cancelling Headphones" {
		t.Errorf("Search(text) = %v, want the headphones", byText)
	}

	min := 100.0
	byPrice, err := svc.Search(ctx, domain.SearchQuery{MinPrice: &min})
	if err != nil {
		t.Fatalf("Search(minPrice) error = %v", err)
	}
	if len(byPrice) != 1 || byPrice[0].Price != 199 {
		t.Errorf("Search(minPrice=100) = %v, want the headphones", byPrice)
	}
}

func TestService_Categories(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	cat := &domain.Category{
		ID:   "cat-1",
		Name: "AUDIO",
		Slug: "audio",
		Icon: "🎧",
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	createProduct(t, svc, CreateProductInput{
		Name: "Earbuds", Price: 49, Category: "AUDIO", Image: "/e.png", StockQuantity: 4,
	})

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("ListCategories() returned %d categories, want 1", len(categories))
	}

	// Lookup works by slug, name (any case) and id.
	for _, identifier := range []string{"audio", "AUDIO", "cat-1"} {
		detail, err := svc.GetCategory(ctx, identifier)
		if err != nil {
			t.Fatalf("GetCategory(%q) error = %v", identifier, err)
		}
		if detail.Category.Name != "AUDIO" {
			t.Errorf("GetCategory(%q).Name = %v, want AUDIO", identifier, detail.Category.Name)
		}
		if detail.ProductCount != 1 {
			t.Errorf("GetCategory(%q).ProductCount = %d, want 1", identifier, detail.ProductCount)
		}
	}

	if _, err := svc.GetCategory(ctx, "nope"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("GetCategory(nope) error = %v, want ErrCategoryNotFound", err)
	}
}
