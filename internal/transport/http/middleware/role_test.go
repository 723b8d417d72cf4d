package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promo-coupon-api/internal/domain"
	jwtinfra "github.com/promo-coupon-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func requestWithClaims(level string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	claims := &jwtinfra.Claims{Username: "someone", Level: level}
	return r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims))
}

func TestRequireLevel_AllowsMatchingLevel(t *testing.T) {
	next, called := okHandler()
	rr := httptest.NewRecorder()

	RequireLevel(domain.LevelAdmin)(next).ServeHTTP(rr, requestWithClaims(domain.LevelAdmin))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}

func TestRequireLevel_ForbidsOtherLevel(t *testing.T) {
	next, called := okHandler()
	rr := httptest.NewRecorder()

	RequireLevel(domain.LevelAdmin)(next).ServeHTTP(rr, requestWithClaims(domain.LevelStaff))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *called)
}

func TestRequireLevel_NoClaims(t *testing.T) {
	next, called := okHandler()
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)

	RequireLevel(domain.LevelAdmin)(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestRequireLevel_MultipleLevels(t *testing.T) {
	next, called := okHandler()
	rr := httptest.NewRecorder()

	RequireLevel(domain.LevelAdmin, domain.LevelStaff)(next).ServeHTTP(rr, requestWithClaims(domain.LevelStaff))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}
