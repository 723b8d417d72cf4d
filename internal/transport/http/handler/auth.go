package handler

import (
	"encoding/json"
	"net/http"

	"github.com/promo-coupon-api/internal/application/access"
	"github.com/promo-coupon-api/internal/domain"
)

// AuthHandler handles staff/admin login.
type AuthHandler struct {
	svc access.Service
}

func NewAuthHandler(svc access.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Message: "Login OK",
		Token:   res.Token,
		Level:   res.Level,
	})
}
