package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SNSRegion string

	// PromoName is printed in the verification SMS; CouponCode is the fixed
	// promotional code issued with every coupon.
	PromoName  string
	CouponCode string
	OTPTTL     time.Duration

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	// Seed credentials for the first admin access account, created at
	// bootstrap when the accounts table is empty. Ignored when blank.
	SeedAdminUsername string
	SeedAdminPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Coupons        string
	PhoneClaims    string
	OtpSessions    string
	AccessAccounts string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3001"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Coupons:        getEnv("DYNAMO_TABLE_COUPONS", "coupons"),
			PhoneClaims:    getEnv("DYNAMO_TABLE_PHONE_CLAIMS", "phone_claims"),
			OtpSessions:    getEnv("DYNAMO_TABLE_OTP_SESSIONS", "otp_sessions"),
			AccessAccounts: getEnv("DYNAMO_TABLE_ACCESS_ACCOUNTS", "access_accounts"),
		},

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		PromoName:  getEnv("PROMO_NAME", "DONPEDRO"),
		CouponCode: getEnv("COUPON_CODE", "D0nP3dro20"),
		OTPTTL:     time.Duration(getEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute,

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,

		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
