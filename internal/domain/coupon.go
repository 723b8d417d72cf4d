package domain

import "time"

// Coupon statuses. USED is terminal: no transition out of it is allowed.
const (
	CouponNotUsed = "NOT_USED"
	CouponUsed    = "USED"
	CouponExpired = "EXPIRED"
)

// Coupon is a durable lead + coupon record.
// PK: coupon_uuid. GSI phone-index: phone.
// A phone may own several coupons across registration attempts; the first
// NOT_USED one is treated as canonical.
type Coupon struct {
	CouponUUID string     `json:"couponUUID" dynamodbav:"coupon_uuid"`
	Phone      string     `json:"phone" dynamodbav:"phone"`
	HolderName string     `json:"name" dynamodbav:"holder_name"`
	Address    string     `json:"address" dynamodbav:"address"`
	Status     string     `json:"status" dynamodbav:"status"`
	CouponCode string     `json:"couponCode" dynamodbav:"coupon_code"`
	CreatedAt  time.Time  `json:"created" dynamodbav:"created_at"`
	UsedAt     *time.Time `json:"usedAt,omitempty" dynamodbav:"used_at"`
}

// PhoneClaim marks a phone number as registered.
// PK: phone. Written transactionally with the first coupon so that two
// concurrent first-time registrations for the same phone cannot both insert.
type PhoneClaim struct {
	Phone      string    `json:"phone" dynamodbav:"phone"`
	CouponUUID string    `json:"couponUUID" dynamodbav:"coupon_uuid"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}

// RegisterRequest is the shared body of both registration variants.
type RegisterRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// RegistrationResult is the outcome of a register-or-fetch attempt.
// When ExistingUser is true no new coupon was created and Coupons carries
// everything already owned by the phone.
type RegistrationResult struct {
	CouponUUID   string
	CouponCode   string
	ExistingUser bool
	Coupons      []Coupon
}
