package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	domain "github.com/example/storefront/domain/admin"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are wrong.
	// Unknown usernames and wrong passwords are indistinguishable to the
	// caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword is returned when a bootstrap password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when a password exceeds bcrypt's
	// 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrInvalidEmail is returned when an email fails to parse.
	ErrInvalidEmail = errors.New("invalid email format")
)

// TokenResult is a successful login: a signed bearer token plus the admin it
// identifies.
type TokenResult struct {
	Token     string
	ExpiresIn int64
	Admin     *domain.Admin
}

// AuthService handles admin authentication. Accounts are provisioned only
// through Bootstrap; a login attempt with an unknown username always fails.
type AuthService struct {
	repo   *AdminRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *AdminRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Login authenticates an admin and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !s.hasher.Verify(password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(a)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenResult{
		Token:     token,
		ExpiresIn: s.jwt.TokenDuration(),
		Admin:     a,
	}, nil
}

// Bootstrap provisions a superadmin account when the username is not yet
// taken. It is the only account-creation path and is driven by deployment
// configuration, not by login traffic. Returns nil without error when the
// account already exists.
func (s *AuthService) Bootstrap(ctx context.Context, username, email, password string) (*domain.Admin, error) {
	if username == "" {
		return nil, fmt.Errorf("bootstrap username is required")
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}
	if email == "" {
		email = username + "@admin.local"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		return nil, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &domain.Admin{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperadmin,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return a, nil
}

// ValidateToken verifies an admin token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		AdminID:  claims.AdminID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// GetAdmin retrieves an admin by ID.
func (s *AuthService) GetAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	return s.repo.FindByID(ctx, id)
}
