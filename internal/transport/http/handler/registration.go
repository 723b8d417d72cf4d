package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/promo-coupon-api/internal/application/registration"
	"github.com/promo-coupon-api/internal/application/verification"
	"github.com/promo-coupon-api/internal/domain"
)

// RegistrationHandler handles the customer-facing registration flow:
// OTP request, OTP check + coupon issuance, and the OTP-skipping direct
// variant used in demos.
type RegistrationHandler struct {
	verifySvc verification.Service
	regSvc    registration.Service
}

func NewRegistrationHandler(verifySvc verification.Service, regSvc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{verifySvc: verifySvc, regSvc: regSvc}
}

func (h *RegistrationHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.verifySvc.RequestCode(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if res.Code != "" {
		writeJSON(w, http.StatusOK, OtpEnvelope{
			Message: fmt.Sprintf("NOTICE (SMS BLOCKED): use code %s.", res.Code),
			Phone:   res.Phone,
			Status:  "pending",
			OtpCode: res.Code,
		})
		return
	}
	writeJSON(w, http.StatusOK, OtpEnvelope{
		Message: fmt.Sprintf("Code sent to %s.", res.Phone),
		Phone:   res.Phone,
		Status:  "pending",
	})
}

func (h *RegistrationHandler) CheckOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		domain.RegisterRequest
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "verification code required")
		return
	}
	res, err := h.regSvc.RegisterVerified(r.Context(), req.RegisterRequest, req.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	msg := "Registration complete!"
	if res.ExistingUser {
		msg = "Access verified."
	}
	writeJSON(w, http.StatusOK, CouponEnvelope{
		Message:        msg,
		CouponUUID:     res.CouponUUID,
		CouponCode:     res.CouponCode,
		IsExistingUser: res.ExistingUser,
	})
}

// RegisterDirect issues a coupon without phone verification. Unlike the
// OTP flow, a returning phone is answered with 409 and its coupon list.
func (h *RegistrationHandler) RegisterDirect(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.regSvc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	if res.ExistingUser {
		writeJSON(w, http.StatusConflict, DuplicateEnvelope{
			Message:        "Phone already registered.",
			Cupons:         res.Coupons,
			IsExistingUser: true,
		})
		return
	}
	writeJSON(w, http.StatusOK, CouponEnvelope{
		Message:    "Registration complete!",
		CouponUUID: res.CouponUUID,
		CouponCode: res.CouponCode,
	})
}
