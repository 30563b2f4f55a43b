package config

import (
	"os"
	"strconv"
)

// CookieConfig holds the security flags applied to the session cookie.
type CookieConfig struct {
	Secure   bool
	HTTPOnly bool
	SameSite string
}

// StripeConfig holds payment provider settings.
type StripeConfig struct {
	SecretKey           string
	DonationAmountCents int64
	PremiumAmountCents  int64
}

// TierConfig holds the limits that distinguish the free and premium tiers.
type TierConfig struct {
	FreeDailyUploads int
	FreeMaxBytes     int64
	PremiumMaxBytes  int64
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables at startup and treated as
// immutable afterwards. Sensitive values are not hardcoded.
type AppConfig struct {
	Port          string
	BaseURL       string
	SessionSecret string
	BodyLimit     int
	CSP           string
	Cookie        CookieConfig
	Stripe        StripeConfig
	Tiers         TierConfig
}

// defaultCSP mirrors the policy the site ships with: self plus the Facebook
// hosts used by the share widgets on the landing page.
const defaultCSP = "default-src 'self' https://connect.facebook.net https://www.facebook.com; " +
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://connect.facebook.net https://www.facebook.com; " +
	"frame-src 'self' https://www.facebook.com https://connect.facebook.net; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https://www.facebook.com"

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:          getEnv("PORT", "8080"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		BodyLimit:     getEnvInt("MAX_BODY_BYTES", 50*1024*1024),
		CSP:           getEnv("CONTENT_SECURITY_POLICY", defaultCSP),
		Cookie: CookieConfig{
			Secure:   getEnvBool("COOKIE_SECURE", true),
			HTTPOnly: getEnvBool("COOKIE_HTTPONLY", true),
			SameSite: getEnv("COOKIE_SAMESITE", "Lax"),
		},
		Stripe: StripeConfig{
			SecretKey:           getEnv("STRIPE_SECRET_KEY", ""),
			DonationAmountCents: getEnvInt64("DONATION_AMOUNT_CENTS", 500),
			PremiumAmountCents:  getEnvInt64("PREMIUM_AMOUNT_CENTS", 900),
		},
		Tiers: TierConfig{
			FreeDailyUploads: getEnvInt("FREE_DAILY_UPLOADS", 2),
			FreeMaxBytes:     getEnvInt64("FREE_MAX_BYTES", 2*1024*1024),
			PremiumMaxBytes:  getEnvInt64("PREMIUM_MAX_BYTES", 50*1024*1024),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
