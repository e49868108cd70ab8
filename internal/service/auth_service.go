package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/pkg/jwt"
	"go-shop-backoffice/pkg/logger"
	"go-shop-backoffice/pkg/session"
)

var (
	ErrCredentialsRequired  = errors.New("Username and password required")
	ErrInvalidCredentials   = errors.New("Incorrect credentials")
	ErrMachineNotAuthorized = errors.New("This account is not authorized on this machine")
	ErrSubscriptionExpired  = errors.New("Subscription expired")
	ErrUnauthenticated      = errors.New("Unauthorized")
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.AuthenticatedShop, error)
}

type LoginResponse struct {
	Success   bool                    `json:"success"`
	Token     string                  `json:"token"`
	ExpiresAt time.Time               `json:"expires_at"`
	Shop      model.AuthenticatedShop `json:"shop"`
}

// AuthOptions binds the service to one deployment.
type AuthOptions struct {
	ShopName    string
	MachineCode string
}

type authService struct {
	shops   repository.ShopRepository
	tokens  *jwt.Manager
	revoked session.RevocationStore
	opts    AuthOptions
	now     func() time.Time
}

func NewAuthService(shops repository.ShopRepository, tokens *jwt.Manager, revoked session.RevocationStore, opts AuthOptions) AuthService {
	return &authService{
		shops:   shops,
		tokens:  tokens,
		revoked: revoked,
		opts:    opts,
		now:     time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	shop, err := s.shops.FindByUsername(ctx, s.opts.ShopName, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !shop.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if shop.BoundElsewhere(s.opts.MachineCode) {
		logger.Warn(ctx, "login refused on unbound machine", "username", username, "machine_code", s.opts.MachineCode)
		return nil, ErrMachineNotAuthorized
	}
	if shop.IsExpired(s.now()) {
		return nil, ErrSubscriptionExpired
	}

	token, claims, err := s.tokens.GenerateToken(shop.ID.String(), shop.ShopName)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Shop:      model.AuthenticatedShop{ID: shop.ID.String(), Name: shop.ShopName},
	}, nil
}

// Logout revokes the token until it would have expired anyway. Logging out
// with an invalid token is a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Authenticate resolves a session token to its shop. Revoked tokens and
// tokens for other deployments are rejected; an expired subscription is
// ErrSubscriptionExpired so the caller can answer 402.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.AuthenticatedShop, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrUnauthenticated
	}

	shop, err := s.shops.FindByID(ctx, claims.ShopID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if shop.ShopName != s.opts.ShopName {
		return nil, ErrUnauthenticated
	}
	if shop.IsExpired(s.now()) {
		return nil, ErrSubscriptionExpired
	}

	return &model.AuthenticatedShop{ID: shop.ID.String(), Name: shop.ShopName}, nil
}
