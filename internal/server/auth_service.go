package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/config"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// AdminStore is the subset of Store used for authentication
type AdminStore interface {
	CreateAdmin(ctx context.Context, email, name, passwordHash string) (*types.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*types.Admin, string, error)
}

// AuthService authenticates and provisions admins
type AuthService struct {
	store          AdminStore
	passwordConfig *config.PasswordConfig
}

// NewAuthService creates an AuthService
func NewAuthService(store AdminStore, passwordConfig *config.PasswordConfig) *AuthService {
	return &AuthService{store: store, passwordConfig: passwordConfig}
}

// Login verifies credentials. Unknown email and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.Admin, error) {
	admin, hash, err := s.store.GetAdminByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	if admin == nil || hash == "" {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, hash) {
		return nil, &ErrInvalidCredentials{}
	}
	return admin, nil
}

// CreateAdmin hashes password and stores a new admin
func (s *AuthService) CreateAdmin(ctx context.Context, email, name, password string) (*types.Admin, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, &ErrValidation{Field: "email", Message: "required"}
	}
	hash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		return nil, &ErrValidation{Field: "password", Message: err.Error()}
	}
	admin, err := s.store.CreateAdmin(ctx, email, strings.TrimSpace(name), hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
