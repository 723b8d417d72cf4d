// Package registration is the register-or-fetch orchestrator: a phone gets
// at most one coupon ever created for it here, and repeat attempts return
// the coupons it already owns.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promo-coupon-api/internal/domain"
	"github.com/promo-coupon-api/internal/pkg/id"
	"github.com/promo-coupon-api/internal/pkg/phone"
	"github.com/promo-coupon-api/internal/pkg/validate"
)

type Service interface {
	// Register runs the unverified (demo) variant: duplicate check, then
	// transactional first-coupon insert.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error)
	// RegisterVerified checks the OTP first and passes verification
	// failures through untouched.
	RegisterVerified(ctx context.Context, req domain.RegisterRequest, code string) (*domain.RegistrationResult, error)
}

type couponStore interface {
	ListByPhone(ctx context.Context, phone string) ([]domain.Coupon, error)
	CreateFirst(ctx context.Context, c *domain.Coupon) error
}

type codeChecker interface {
	CheckCode(ctx context.Context, rawPhone, code string) (string, error)
}

type service struct {
	coupons    couponStore
	verifier   codeChecker
	couponCode string
}

type ServiceDeps struct {
	CouponRepo couponStore
	Verifier   codeChecker
	CouponCode string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		coupons:    deps.CouponRepo,
		verifier:   deps.Verifier,
		couponCode: deps.CouponCode,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	normalized := phone.Normalize(req.Phone)
	if !phone.Valid(normalized) {
		return nil, fmt.Errorf("invalid phone number, include the area code: %w", domain.ErrBadRequest)
	}

	existing, err := s.coupons.ListByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return duplicateResult(existing, s.couponCode), nil
	}

	c := &domain.Coupon{
		CouponUUID: id.NewCoupon(),
		Phone:      normalized,
		HolderName: req.Name,
		Address:    req.Address,
		Status:     domain.CouponNotUsed,
		CouponCode: s.couponCode,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.coupons.CreateFirst(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a concurrent first-registration race; whoever won holds
			// the coupon now, so fetch and report it as a duplicate.
			existing, lerr := s.coupons.ListByPhone(ctx, normalized)
			if lerr != nil || len(existing) == 0 {
				return nil, err
			}
			return duplicateResult(existing, s.couponCode), nil
		}
		return nil, err
	}
	return &domain.RegistrationResult{
		CouponUUID: c.CouponUUID,
		CouponCode: c.CouponCode,
	}, nil
}

func (s *service) RegisterVerified(ctx context.Context, req domain.RegisterRequest, code string) (*domain.RegistrationResult, error) {
	// Reject bad input before touching the session: CheckCode consumes it
	// on a match, and a typo in the name or address must not cost the
	// registrant their code.
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !phone.Valid(phone.Normalize(req.Phone)) {
		return nil, fmt.Errorf("invalid phone number, include the area code: %w", domain.ErrBadRequest)
	}
	if _, err := s.verifier.CheckCode(ctx, req.Phone, code); err != nil {
		return nil, err
	}
	return s.Register(ctx, req)
}

// duplicateResult picks the canonical coupon for a returning phone: the
// first not-yet-used one, falling back to the oldest overall.
func duplicateResult(coupons []domain.Coupon, couponCode string) *domain.RegistrationResult {
	canonical := coupons[0].CouponUUID
	for _, c := range coupons {
		if c.Status == domain.CouponNotUsed {
			canonical = c.CouponUUID
			break
		}
	}
	return &domain.RegistrationResult{
		CouponUUID:   canonical,
		CouponCode:   couponCode,
		ExistingUser: true,
		Coupons:      coupons,
	}
}
