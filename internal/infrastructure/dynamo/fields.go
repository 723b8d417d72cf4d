package dynamo

// DynamoDB attribute names used in key conditions and update expressions.
// Constants prevent silent runtime bugs caused by key typos.
const (
	fieldCouponUUID = "coupon_uuid"
	fieldPhone      = "phone"
	fieldStatus     = "status"
	fieldUsedAt     = "used_at"
	fieldCreatedAt  = "created_at"
	fieldUsername   = "username"
	fieldExpiresAt  = "expires_at"
)
