// Package otp generates the one-time numeric codes sent by SMS.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewCode returns a uniformly random 6-digit code in [100000, 999999].
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
