package contact

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/storefront/domain/contact"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMissingFields is returned when a submission omits a required field.
var ErrMissingFields = errors.New("all fields are required")

// Service handles contact-form submissions.
type Service struct {
	db *gorm.DB
}

// NewService creates a new contact service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit stores a contact-form message. All fields are required.
func (s *Service) Submit(ctx context.Context, name, email, subject, message string) (*domain.Message, error) {
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, ErrMissingFields
	}

	m := &domain.Message{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}
	return m, nil
}

// List retrieves all contact messages, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}
