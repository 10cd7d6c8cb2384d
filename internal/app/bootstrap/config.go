// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for BrainCache.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: BRAINCACHE_MONGO_URI, BRAINCACHE_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "braincache", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "braincache-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs mail instead of sending)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@braincache.app", Desc: "From email address"},
	{Name: "site_name", Default: "BrainCache", Desc: "Display name used in outgoing mail"},

	// URLs
	{Name: "base_url", Default: "http://localhost:8080", Desc: "This API's public base URL (OAuth callbacks)"},
	{Name: "frontend_url", Default: "http://localhost:3000", Desc: "SPA public URL (share links, redirects)"},

	// Login code settings
	{Name: "otp_expiry", Default: "10m", Desc: "Login code expiry (e.g., 10m, 1h)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Payments configuration
	{Name: "payment_api_url", Default: "", Desc: "Checkout provider base URL (blank disables billing)"},
	{Name: "payment_api_key", Default: "", Desc: "Checkout provider API key"},
	{Name: "payment_webhook_key", Default: "", Desc: "HMAC key for webhook signature verification"},

	// Plan caps
	{Name: "free_space_limit", Default: limits.DefaultFreeSpaceLimit, Desc: "Max owned spaces on the free plan"},
	{Name: "pro_space_limit", Default: limits.DefaultProSpaceLimit, Desc: "Max owned spaces on the pro plan"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, BRAINCACHE_* for app), and
// command-line flags, merging with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BRAINCACHE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		SiteName:     appValues.String("site_name"),

		BaseURL:     appValues.String("base_url"),
		FrontendURL: appValues.String("frontend_url"),

		OTPExpiry: appValues.Duration("otp_expiry", 10*time.Minute),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		PaymentAPIURL:     appValues.String("payment_api_url"),
		PaymentAPIKey:     appValues.String("payment_api_key"),
		PaymentWebhookKey: appValues.String("payment_webhook_key"),

		FreeSpaceLimit: appValues.Int("free_space_limit"),
		ProSpaceLimit:  appValues.Int("pro_space_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backends are dialed.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.FreeSpaceLimit <= 0 || appCfg.ProSpaceLimit <= 0 {
		return fmt.Errorf("space limits must be positive (free=%d, pro=%d)",
			appCfg.FreeSpaceLimit, appCfg.ProSpaceLimit)
	}
	if appCfg.ProSpaceLimit < appCfg.FreeSpaceLimit {
		return fmt.Errorf("pro_space_limit (%d) must be at least free_space_limit (%d)",
			appCfg.ProSpaceLimit, appCfg.FreeSpaceLimit)
	}

	// Google OAuth is optional, but half a configuration is a mistake.
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}

	if coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be changed from the dev default in production")
	}

	return nil
}
