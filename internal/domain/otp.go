package domain

// OtpSession is a pending phone verification.
// PK: phone — at most one live session per phone; a new request for the
// same phone overwrites the previous one.
// ExpiresAt is a Unix timestamp also used as DynamoDB TTL.
type OtpSession struct {
	Phone     string `json:"phone" dynamodbav:"phone"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
