package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/promo-coupon-api/internal/application/access"
	"github.com/promo-coupon-api/internal/config"
	"github.com/promo-coupon-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/promo-coupon-api/internal/infrastructure/jwt"
	"github.com/promo-coupon-api/internal/infrastructure/sns"
	transporthttp "github.com/promo-coupon-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Staff login and coupon validation cannot work without signed tokens.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider not available: %v", err)
	}

	// SNS SMS sender; without it, OTP codes are surfaced in responses.
	smsSender, err := sns.NewSender(cfg)
	if err != nil {
		log.Printf("WARN: SNS sender not available, falling back to in-response codes: %v", err)
		smsSender = sns.NewDisabledSender()
	}

	couponRepo := dynamo.NewCouponRepo(dynamoClient, cfg.DynamoTables.Coupons, cfg.DynamoTables.PhoneClaims)
	accountRepo := dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.AccessAccounts)

	// Seed the initial admin account, if configured and absent.
	seedSvc := access.NewService(access.ServiceDeps{
		AccountRepo: accountRepo,
		CouponRepo:  couponRepo,
		TokenSigner: jwtProvider,
	})
	if err := seedSvc.EnsureSeedAccount(context.Background(), cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		log.Printf("WARN: could not seed admin account: %v", err)
	}

	deps := &transporthttp.Deps{
		CouponRepo:     couponRepo,
		OtpSessionRepo: dynamo.NewOtpSessionRepo(dynamoClient, cfg.DynamoTables.OtpSessions),
		AccountRepo:    accountRepo,
		SMSSender:      smsSender,
		JWTProvider:    jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
