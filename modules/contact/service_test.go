package contact

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/storefront/domain/contact"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewService(db)
}

func TestService_Submit(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	m, err := svc.Submit(ctx, "Ada", "ada@example.com", "Shipping", "Where is my order?")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if m.ID == "" {
		t.Error("Submit() did not assign an ID")
	}

	messages, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(messages) != 1 || messages[0].Subject != "Shipping" {
		t.Errorf("List() = %+v, want the submitted message", messages)
	}
}

func TestService_Submit_RequiresAllFields(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		fields [4]string // name, email, subject, message
	}{
		{"missing name", [4]string{"", "a@example.com", "Hi", "Body"}},
		{"missing email", [4]string{"Ada", "", "Hi", "Body"}},
		{"missing subject", [4]string{"Ada", "a@example.com", "", "Body"}},
		{"missing message", [4]string{"Ada", "a@example.com", "Hi", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.fields[0], tt.fields[1], tt.fields[2], tt.fields[3])
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("Submit() error = %v, want ErrMissingFields", err)
			}
		})
	}
}
