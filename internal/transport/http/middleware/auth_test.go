package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/promo-coupon-api/internal/config"
	jwtinfra "github.com/promo-coupon-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestJWTProvider generates a fresh RSA key pair and returns a provider.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         time.Hour,
	})
	require.NoError(t, err)
	return p
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuth_MissingToken(t *testing.T) {
	p := newTestJWTProvider(t)
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodPost, "/func/validate", nil)
	rr := httptest.NewRecorder()
	Auth(p)(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuth_GarbageToken(t *testing.T) {
	p := newTestJWTProvider(t)
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodPost, "/func/validate", nil)
	r.Header.Set("X-Auth-Token", "staff1:STAFF") // the legacy literal format
	rr := httptest.NewRecorder()
	Auth(p)(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	p := newTestJWTProvider(t)
	token, err := p.Sign("staff1", "STAFF")
	require.NoError(t, err)

	var got *jwtinfra.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/func/validate", nil)
	r.Header.Set("X-Auth-Token", token)
	rr := httptest.NewRecorder()
	Auth(p)(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "staff1", got.Username)
	assert.Equal(t, "STAFF", got.Level)
}

func TestAuth_TokenFromDifferentKey(t *testing.T) {
	p1 := newTestJWTProvider(t)
	p2 := newTestJWTProvider(t)
	token, err := p1.Sign("staff1", "STAFF")
	require.NoError(t, err)

	next, called := okHandler()
	r := httptest.NewRequest(http.MethodPost, "/func/validate", nil)
	r.Header.Set("X-Auth-Token", token)
	rr := httptest.NewRecorder()
	Auth(p2)(next).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}
