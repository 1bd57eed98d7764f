package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/storefront/modules/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// BootstrapConfig seeds the initial superadmin account. Empty Username
// disables bootstrapping; login never creates accounts.
type BootstrapConfig struct {
	Username string
	Email    string
	Password string
}

// AuthModule provides admin authentication services. It must be registered
// after the store module.
type AuthModule struct {
	store     *store.Module
	service   *AuthService
	jwtConfig JWTConfig
	bootstrap BootstrapConfig
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(storeMod *store.Module, jwtConfig JWTConfig, bootstrap BootstrapConfig) *AuthModule {
	return &AuthModule{
		store:     storeMod,
		jwtConfig: jwtConfig,
		bootstrap: bootstrap,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start creates the service and provisions the bootstrap account when
// configured.
func (m *AuthModule) Start(ctx context.Context) error {
	db := m.store.DB()
	if db == nil {
		return fmt.Errorf("store module not initialized")
	}

	repo := NewAdminRepository(db)
	m.service = NewAuthService(repo, NewPasswordHasher(), NewJWTManager(m.jwtConfig))

	if m.bootstrap.Username != "" {
		a, err := m.service.Bootstrap(ctx, m.bootstrap.Username, m.bootstrap.Email, m.bootstrap.Password)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		if a != nil {
			log.Printf("[auth] Bootstrapped superadmin %q", a.Username)
		}
	} else {
		log.Println("[auth] No bootstrap admin configured")
	}

	log.Println("[auth] Module started")
	return nil
}

// Stop stops the module.
func (m *AuthModule) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	log.Printf("[auth] Registered services: login, validate-token")
	return nil
}

// handleLogin handles admin login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	result, err := m.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		Admin: AdminInfo{
			ID:       result.Admin.ID,
			Username: result.Admin.Username,
			Email:    result.Admin.Email,
			Role:     result.Admin.Role,
		},
	}, nil
}

// handleValidateToken handles token validation. Validation failures are
// reported in the response body rather than as errors.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{Valid: false, Error: errMsg}, nil
	}

	return ValidateTokenResponse{
		Valid:    true,
		AdminID:  claims.AdminID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// GetService returns the auth service.
func (m *AuthModule) GetService() *AuthService {
	return m.service
}
