// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for BrainCache.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); everything
// specific to this application lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (blank disables real delivery; mail is logged)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	SiteName     string // Display name used in outgoing mail

	// URLs
	BaseURL     string // This API's public base URL (OAuth callbacks)
	FrontendURL string // The SPA's public URL (share links, redirects, mail links)

	// Login code settings
	OTPExpiry time.Duration // One-time login code validity window

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Payments configuration
	PaymentAPIURL     string // Checkout provider base URL (blank disables billing)
	PaymentAPIKey     string // Checkout provider API key
	PaymentWebhookKey string // HMAC key for webhook signature verification

	// Plan caps
	FreeSpaceLimit int // Max owned spaces on the free plan
	ProSpaceLimit  int // Max owned spaces on the pro plan
}
