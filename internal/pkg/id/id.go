package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewCoupon generates the UUID handed to registrants and printed in their
// QR code. Random (v4), matching what the frontend scanner expects.
func NewCoupon() string {
	return uuid.NewString()
}

// NewToken generates a ULID used as the jti of signed access tokens.
// Lexicographic sortability keeps token ids grep-friendly in logs.
func NewToken() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
