// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/braincachehq/braincache/internal/app/features/authgoogle"
	billingfeature "github.com/braincachehq/braincache/internal/app/features/billing"
	brainfeature "github.com/braincachehq/braincache/internal/app/features/brain"
	commentsfeature "github.com/braincachehq/braincache/internal/app/features/comments"
	contentsfeature "github.com/braincachehq/braincache/internal/app/features/contents"
	healthfeature "github.com/braincachehq/braincache/internal/app/features/health"
	loginfeature "github.com/braincachehq/braincache/internal/app/features/login"
	logoutfeature "github.com/braincachehq/braincache/internal/app/features/logout"
	profilefeature "github.com/braincachehq/braincache/internal/app/features/profile"
	reportsfeature "github.com/braincachehq/braincache/internal/app/features/reports"
	sharesfeature "github.com/braincachehq/braincache/internal/app/features/shares"
	spacesfeature "github.com/braincachehq/braincache/internal/app/features/spaces"
	usersfeature "github.com/braincachehq/braincache/internal/app/features/users"
	"github.com/braincachehq/braincache/internal/app/store/oauthstate"
	otpstore "github.com/braincachehq/braincache/internal/app/store/otp"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/mailer"
	"github.com/braincachehq/braincache/internal/app/system/payments"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// BrainCache serves a JSON API under /api/v1 plus a health endpoint and
// static assets. The frontend is a separate app; handlers here never
// render HTML.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes, plan upgrades, and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Outbound mail: real SMTP when configured, otherwise log-only so dev
	// setups work without a mail server.
	var mail mailer.Sender
	if appCfg.MailSMTPHost != "" {
		mail = mailer.NewSMTP(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailSMTPUser, appCfg.MailSMTPPass, appCfg.MailFrom, logger)
	} else {
		mail = mailer.NewLog(logger)
	}

	payClient := payments.New(appCfg.PaymentAPIURL, appCfg.PaymentAPIKey, appCfg.PaymentWebhookKey, logger)

	users := userstore.New(db)
	codes := otpstore.New(db, appCfg.OTPExpiry)
	states := oauthstate.New(db)
	spaceLimits := limits.SpaceLimits{Free: appCfg.FreeSpaceLimit, Pro: appCfg.ProSpaceLimit}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Route("/api/v1", func(api chi.Router) {
		// Authentication: email code sign-in plus optional Google OAuth.
		loginHandler := loginfeature.NewHandler(users, codes, mail, sessionMgr, appCfg.SiteName, logger)
		api.Mount("/auth", loginfeature.Routes(loginHandler))

		googleHandler := authgooglefeature.NewHandler(users, states, sessionMgr,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.FrontendURL, logger)
		api.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
		api.Post("/auth/logout", logoutHandler.HandleLogout)

		// Current-user profile
		profileHandler := profilefeature.NewHandler(users, logger)
		api.With(sessionMgr.RequireSignedIn).Get("/me", profileHandler.ServeMe)
		api.With(sessionMgr.RequireSignedIn).Patch("/me", profileHandler.HandleUpdateMe)

		// User directory lookup for the grant dialog
		usersHandler := usersfeature.NewHandler(users, logger)
		api.With(sessionMgr.RequireSignedIn).Get("/users", usersHandler.ServeSearch)

		// Spaces and content items
		spacesHandler := spacesfeature.NewHandler(db, spaceLimits, logger)
		api.Mount("/spaces", spacesfeature.Routes(spacesHandler, sessionMgr))

		contentsHandler := contentsfeature.NewHandler(db, logger)
		api.Mount("/contents", contentsfeature.Routes(contentsHandler, sessionMgr))

		// Sharing: grants and public share links
		sharesHandler := sharesfeature.NewHandler(db, mail, appCfg.SiteName, appCfg.FrontendURL, logger)
		api.Mount("/shares", sharesfeature.Routes(sharesHandler, sessionMgr))

		// Public share-link resolution; no session required.
		brainHandler := brainfeature.NewHandler(db, logger)
		api.Get("/brain/{token}", brainHandler.ServeResolve)

		// Space comments
		commentsHandler := commentsfeature.NewHandler(db, logger)
		api.Mount("/comments", commentsfeature.Routes(commentsHandler, sessionMgr))

		// Content reports
		reportsHandler := reportsfeature.NewHandler(db, logger)
		api.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

		// Billing: checkout requires a session; the webhook is called by the
		// payment provider and authenticates with a signature instead.
		billingHandler := billingfeature.NewHandler(users, payClient, appCfg.FrontendURL, logger)
		api.With(sessionMgr.RequireSignedIn).Post("/billing/checkout", billingHandler.HandleCheckout)
		api.Post("/billing/webhook", billingHandler.HandleWebhook)
	})

	return r, nil
}
