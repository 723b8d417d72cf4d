package http

import (
	"github.com/promo-coupon-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/promo-coupon-api/internal/infrastructure/jwt"
	"github.com/promo-coupon-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CouponRepo     *dynamo.CouponRepo
	OtpSessionRepo *dynamo.OtpSessionRepo
	AccountRepo    *dynamo.AccountRepo
	SMSSender      sns.SMSSender
	JWTProvider    *jwtinfra.Provider
}
