// Package phone canonicalizes user-entered phone numbers into the dialable
// +<countrycode><digits> form used as the join key between OTP sessions
// and coupons.
package phone

import "strings"

// Normalize strips everything but digits and prefixes a country code:
// 11 digits starting with 1 are treated as US with country code, 10 digits
// as US without one. Anything else keeps its digits untouched behind a "+".
// Total over its input; Valid is the only gate applied downstream.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	case len(digits) == 10:
		return "+1" + digits
	default:
		return "+" + digits
	}
}

// Valid reports whether a normalized number is acceptable: it must carry
// the "+" prefix and be at least 12 characters (US length with +1).
func Valid(normalized string) bool {
	return strings.HasPrefix(normalized, "+") && len(normalized) >= 12
}
