package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promo-coupon-api/internal/application/redemption"
	"github.com/promo-coupon-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRedeemSvc struct{ mock.Mock }

func (m *mockRedeemSvc) Redeem(ctx context.Context, couponUUID string) (*redemption.Result, error) {
	args := m.Called(ctx, couponUUID)
	if r, _ := args.Get(0).(*redemption.Result); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestValidate_InvalidBody(t *testing.T) {
	h := NewRedemptionHandler(&mockRedeemSvc{})
	r := httptest.NewRequest(http.MethodPost, "/func/validate", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Validate(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidate_NotFound(t *testing.T) {
	svc := &mockRedeemSvc{}
	svc.On("Redeem", mock.Anything, "nope").
		Return(nil, fmt.Errorf("coupon not found: %w", domain.ErrNotFound))

	h := NewRedemptionHandler(svc)
	rr := httptest.NewRecorder()
	h.Validate(rr, postJSON(t, "/func/validate", map[string]string{"couponUUID": "nope"}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidate_AlreadyUsed(t *testing.T) {
	svc := &mockRedeemSvc{}
	svc.On("Redeem", mock.Anything, "c1").
		Return(nil, fmt.Errorf("coupon already used by Alice Smith: %w", domain.ErrConflict))

	h := NewRedemptionHandler(svc)
	rr := httptest.NewRecorder()
	h.Validate(rr, postJSON(t, "/func/validate", map[string]string{"couponUUID": "c1"}))

	require.Equal(t, http.StatusConflict, rr.Code)
	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Contains(t, env.Message, "Alice Smith")
}

func TestValidate_HappyPath(t *testing.T) {
	svc := &mockRedeemSvc{}
	svc.On("Redeem", mock.Anything, "c1").
		Return(&redemption.Result{HolderName: "Alice Smith"}, nil)

	h := NewRedemptionHandler(svc)
	rr := httptest.NewRecorder()
	h.Validate(rr, postJSON(t, "/func/validate", map[string]string{"couponUUID": "c1"}))

	require.Equal(t, http.StatusOK, rr.Code)
	var env ValidateEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "VALIDATED", env.Status)
	assert.Equal(t, "Alice Smith", env.HolderName)
	assert.Contains(t, env.Message, "Alice Smith")
}
