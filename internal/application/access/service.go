// Package access handles staff/admin login and the admin lead listing.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/promo-coupon-api/internal/domain"
	"github.com/promo-coupon-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is a signed access token plus the account's level, which the
// frontend uses to pick the staff or admin view.
type LoginResult struct {
	Token string
	Level string
}

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	ListLeads(ctx context.Context) ([]domain.Coupon, error)
	// EnsureSeedAccount creates the initial admin account when it does not
	// exist yet. No-op on blank credentials.
	EnsureSeedAccount(ctx context.Context, username, password string) error
}

type accountStore interface {
	Get(ctx context.Context, username string) (*domain.AccessAccount, error)
	Put(ctx context.Context, a *domain.AccessAccount) error
}

type couponStore interface {
	Scan(ctx context.Context) ([]domain.Coupon, error)
}

type tokenSigner interface {
	Sign(username, level string) (string, error)
}

type service struct {
	accounts accountStore
	coupons  couponStore
	signer   tokenSigner
}

type ServiceDeps struct {
	AccountRepo accountStore
	CouponRepo  couponStore
	TokenSigner tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.AccountRepo,
		coupons:  deps.CouponRepo,
		signer:   deps.TokenSigner,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	a, err := s.accounts.Get(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(a.Username, a.Level)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, Level: a.Level}, nil
}

func (s *service) ListLeads(ctx context.Context) ([]domain.Coupon, error) {
	return s.coupons.Scan(ctx)
}

func (s *service) EnsureSeedAccount(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.accounts.Get(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accounts.Put(ctx, &domain.AccessAccount{
		Username:     username,
		PasswordHash: string(hash),
		Level:        domain.LevelAdmin,
	}); err != nil {
		return err
	}
	slog.Info("seeded admin access account", "username", username)
	return nil
}
