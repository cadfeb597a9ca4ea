// internal/infra/config/config.go
package config

import "os"

// Config holds the environment configuration for the whole app.
type Config struct {
	Port string

	// Postgres catalog.
	DatabaseURL string

	// Firestore cart persistence. When ProjectID is empty the app falls
	// back to the in-memory cart store (local dev).
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// GCP project used for Secret Manager lookups.
	GCPProjectID string

	// Static assets root (product images, precomputed caches).
	PublicDir string

	// Absolute site origin used when the request carries no Origin header.
	SiteURL  string
	SiteName string

	// Payment providers. Empty values may be resolved via Secret Manager.
	StripeSecretKey    string
	PayPalClientID     string
	PayPalClientSecret string
	PayPalEnv          string // "live" or anything else -> sandbox

	// Contact form.
	SendGridAPIKey string
	ShopContact    string

	// Manual Bitcoin flow.
	BitcoinAddress string
}

// Load reads the environment and returns the Config.
func Load() *Config {
	return &Config{
		Port:        getenvDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		FirestoreProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		GCPProjectID: os.Getenv("GCP_PROJECT_ID"),

		PublicDir: getenvDefault("PUBLIC_DIR", "public"),

		SiteURL:  getenvDefault("SITE_URL", "http://localhost:3000"),
		SiteName: getenvDefault("SITE_NAME", "M3D SHOP"),

		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalEnv:          os.Getenv("PAYPAL_ENV"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		ShopContact:    os.Getenv("SHOP_CONTACT"),

		BitcoinAddress: os.Getenv("BITCOIN_ADDRESS"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
