// Package redemption marks coupons as consumed, at most once per coupon.
package redemption

import (
	"context"
	"fmt"
	"time"

	"github.com/promo-coupon-api/internal/domain"
)

// Result carries the holder's name so staff can greet the customer.
type Result struct {
	HolderName string
}

type Service interface {
	Redeem(ctx context.Context, couponUUID string) (*Result, error)
}

type couponStore interface {
	Get(ctx context.Context, couponUUID string) (*domain.Coupon, error)
	MarkUsed(ctx context.Context, couponUUID string, usedAt time.Time) error
}

type service struct {
	coupons couponStore
}

func NewService(coupons couponStore) Service {
	return &service{coupons: coupons}
}

func (s *service) Redeem(ctx context.Context, couponUUID string) (*Result, error) {
	if couponUUID == "" {
		return nil, fmt.Errorf("coupon id required: %w", domain.ErrBadRequest)
	}
	c, err := s.coupons.Get(ctx, couponUUID)
	if err != nil {
		return nil, err
	}
	switch c.Status {
	case domain.CouponUsed:
		return nil, fmt.Errorf("coupon already used by %s: %w", c.HolderName, domain.ErrConflict)
	case domain.CouponExpired:
		return nil, fmt.Errorf("coupon expired: %w", domain.ErrConflict)
	}
	// The conditional update is the serialization point: of two concurrent
	// redemptions only one flips NOT_USED to USED, the other conflicts here.
	if err := s.coupons.MarkUsed(ctx, couponUUID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &Result{HolderName: c.HolderName}, nil
}
