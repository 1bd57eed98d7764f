package auth

import (
	"context"
	"errors"

	domain "github.com/example/storefront/domain/admin"
	"gorm.io/gorm"
)

var (
	// ErrAdminNotFound is returned when an admin lookup misses.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminExists is returned when a username or email is taken.
	ErrAdminExists = errors.New("admin already exists")
)

// AdminRepository handles admin persistence using GORM.
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin account.
func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAdminExists
		}
		return err
	}
	return nil
}

// FindByUsername finds an admin by username.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).First(&a, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID finds an admin by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UsernameExists checks whether an admin with the given username exists.
func (r *AdminRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Admin{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
