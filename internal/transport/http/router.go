package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/promo-coupon-api/internal/application/access"
	"github.com/promo-coupon-api/internal/application/redemption"
	"github.com/promo-coupon-api/internal/application/registration"
	"github.com/promo-coupon-api/internal/application/verification"
	"github.com/promo-coupon-api/internal/config"
	"github.com/promo-coupon-api/internal/domain"
	"github.com/promo-coupon-api/internal/transport/http/handler"
	appmiddleware "github.com/promo-coupon-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Auth-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to endpoints that send SMS
	// or accept credentials.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verifySvc := verification.NewService(verification.ServiceDeps{
		SessionRepo: deps.OtpSessionRepo,
		CouponRepo:  deps.CouponRepo,
		SMSSender:   deps.SMSSender,
		PromoName:   cfg.PromoName,
		OTPTTL:      cfg.OTPTTL,
	})
	regSvc := registration.NewService(registration.ServiceDeps{
		CouponRepo: deps.CouponRepo,
		Verifier:   verifySvc,
		CouponCode: cfg.CouponCode,
	})
	redeemSvc := redemption.NewService(deps.CouponRepo)
	accessSvc := access.NewService(access.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		CouponRepo:  deps.CouponRepo,
		TokenSigner: deps.JWTProvider,
	})

	healthH := handler.NewHealthHandler()
	regH := handler.NewRegistrationHandler(verifySvc, regSvc)
	redeemH := handler.NewRedemptionHandler(redeemSvc)
	authH := handler.NewAuthHandler(accessSvc)
	leadsH := handler.NewLeadsHandler(accessSvc)

	// ── Public routes ────────────────────────────────────────────────────
	r.Get("/health-check/{action}", healthH.Ping)
	r.With(sensitiveRL.Limit).Post("/api/send-otp", regH.SendOTP)
	r.Post("/api/check-otp", regH.CheckOTP)
	r.With(sensitiveRL.Limit).Post("/api/register-direct", regH.RegisterDirect)
	r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)

	// ── Staff routes (X-Auth-Token) ──────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Post("/func/validate", redeemH.Validate)

		// Admin-only
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireLevel(domain.LevelAdmin))

			r.Get("/admin/leads", leadsH.List)
		})
	})

	return r
}
