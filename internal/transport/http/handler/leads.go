package handler

import (
	"net/http"

	"github.com/promo-coupon-api/internal/application/access"
	"github.com/promo-coupon-api/internal/domain"
)

// LeadsHandler serves the admin lead listing.
type LeadsHandler struct {
	svc access.Service
}

func NewLeadsHandler(svc access.Service) *LeadsHandler { return &LeadsHandler{svc: svc} }

func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.svc.ListLeads(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if leads == nil {
		leads = []domain.Coupon{}
	}
	writeJSON(w, http.StatusOK, leads)
}
