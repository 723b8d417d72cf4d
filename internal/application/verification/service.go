// Package verification owns the OTP session lifecycle: issuing codes,
// delivering them by SMS and checking them exactly once.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/promo-coupon-api/internal/domain"
	"github.com/promo-coupon-api/internal/infrastructure/sns"
	"github.com/promo-coupon-api/internal/pkg/otp"
	"github.com/promo-coupon-api/internal/pkg/phone"
	"github.com/promo-coupon-api/internal/pkg/validate"
)

// RequestResult reports where the code went. Code is populated only when
// the SMS channel refused delivery (sandbox or opted-out destination) and
// the code is surfaced to the caller instead — a deliberate tradeoff for
// constrained test environments.
type RequestResult struct {
	Phone string
	Code  string
}

type Service interface {
	RequestCode(ctx context.Context, req domain.RegisterRequest) (*RequestResult, error)
	// CheckCode consumes the pending session for the phone and returns the
	// normalized phone number on success.
	CheckCode(ctx context.Context, rawPhone, code string) (string, error)
}

type otpStore interface {
	Put(ctx context.Context, s *domain.OtpSession) error
	Get(ctx context.Context, phone string) (*domain.OtpSession, error)
	Delete(ctx context.Context, phone string) error
}

type couponStore interface {
	ListByPhone(ctx context.Context, phone string) ([]domain.Coupon, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	sessions  otpStore
	coupons   couponStore
	sms       smsSender
	promoName string
	ttl       time.Duration
}

type ServiceDeps struct {
	SessionRepo otpStore
	CouponRepo  couponStore
	SMSSender   smsSender
	PromoName   string
	OTPTTL      time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		sessions:  deps.SessionRepo,
		coupons:   deps.CouponRepo,
		sms:       deps.SMSSender,
		promoName: deps.PromoName,
		ttl:       deps.OTPTTL,
	}
}

func (s *service) RequestCode(ctx context.Context, req domain.RegisterRequest) (*RequestResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	normalized := phone.Normalize(req.Phone)
	if !phone.Valid(normalized) {
		return nil, fmt.Errorf("invalid phone number, include the area code: %w", domain.ErrBadRequest)
	}

	// Returning registrants get greeted by the name they registered with.
	name := req.Name
	if existing, err := s.coupons.ListByPhone(ctx, normalized); err == nil && len(existing) > 0 {
		name = existing[0].HolderName
	}

	code, err := otp.NewCode()
	if err != nil {
		return nil, err
	}
	// Upsert on phone: a repeat request replaces any pending session, so at
	// most one code is live per phone at any time.
	sess := &domain.OtpSession{
		Phone:     normalized,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(s.ttl).Unix(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store otp session: %w", err)
	}

	msg := fmt.Sprintf("Hi %s, your %s verification code is %s. Valid for %d minutes.",
		name, s.promoName, code, int(s.ttl.Minutes()))
	if err := s.sms.SendSMS(ctx, normalized, msg); err != nil {
		if errors.Is(err, sns.ErrDeliveryBlocked) {
			slog.Warn("sms delivery blocked, surfacing code to caller", "phone", normalized, "err", err)
			return &RequestResult{Phone: normalized, Code: code}, nil
		}
		return nil, fmt.Errorf("send sms: %w", err)
	}
	return &RequestResult{Phone: normalized}, nil
}

func (s *service) CheckCode(ctx context.Context, rawPhone, code string) (string, error) {
	normalized := phone.Normalize(rawPhone)
	sess, err := s.sessions.Get(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("verification session not found: %w", domain.ErrUnauthorized)
		}
		return "", err
	}
	if time.Now().UTC().Unix() > sess.ExpiresAt {
		// Expired sessions are gone for good; a retry needs a fresh code.
		if err := s.sessions.Delete(ctx, normalized); err != nil {
			slog.Warn("failed to delete expired otp session", "phone", normalized, "err", err)
		}
		return "", fmt.Errorf("verification code expired: %w", domain.ErrUnauthorized)
	}
	if sess.Code != code {
		// Session stays: the registrant may retype within the expiry window.
		return "", fmt.Errorf("incorrect verification code: %w", domain.ErrUnauthorized)
	}
	// Single use: consume the session on a successful match.
	if err := s.sessions.Delete(ctx, normalized); err != nil {
		slog.Warn("failed to delete consumed otp session", "phone", normalized, "err", err)
	}
	return normalized, nil
}
