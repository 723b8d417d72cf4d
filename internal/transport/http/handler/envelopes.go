package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/promo-coupon-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper the original frontend
// expects: every outcome, including errors, carries a "message".
type MessageEnvelope struct {
	Message string `json:"message"`
}

// OtpEnvelope answers a send-otp request. OtpCode is set only on the
// delivery-blocked fallback, when the SMS could not reach the phone.
type OtpEnvelope struct {
	Message string `json:"message"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
	OtpCode string `json:"otpCode,omitempty"`
}

// CouponEnvelope answers a successful registration.
type CouponEnvelope struct {
	Message        string `json:"message"`
	CouponUUID     string `json:"couponUUID"`
	CouponCode     string `json:"couponCode"`
	IsExistingUser bool   `json:"isExistingUser,omitempty"`
}

// DuplicateEnvelope answers a direct registration for a phone that already
// owns coupons. The "cupons" key is kept for frontend compatibility.
type DuplicateEnvelope struct {
	Message        string          `json:"message"`
	Cupons         []domain.Coupon `json:"cupons"`
	IsExistingUser bool            `json:"isExistingUser"`
}

// LoginEnvelope answers a staff/admin login.
type LoginEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Level   string `json:"level"`
}

// ValidateEnvelope answers a coupon redemption.
type ValidateEnvelope struct {
	Message    string `json:"message"`
	Status     string `json:"status"`
	HolderName string `json:"holderName"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

// httpError maps domain sentinel errors to status codes. Anything
// unrecognized is a 500: the detail is logged server-side and the client
// only sees a generic message.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
