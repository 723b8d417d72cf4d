package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/promo-coupon-api/internal/application/redemption"
)

// RedemptionHandler handles the staff validation endpoint.
type RedemptionHandler struct {
	svc redemption.Service
}

func NewRedemptionHandler(svc redemption.Service) *RedemptionHandler {
	return &RedemptionHandler{svc: svc}
}

func (h *RedemptionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CouponUUID string `json:"couponUUID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Redeem(r.Context(), req.CouponUUID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ValidateEnvelope{
		Message:    fmt.Sprintf("COUPON VALID! Registered to %s.", res.HolderName),
		Status:     "VALIDATED",
		HolderName: res.HolderName,
	})
}
