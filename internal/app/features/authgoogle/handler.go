// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/braincachehq/braincache/internal/app/store/oauthstate"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth sign-in. An account is created on first
// login; the identity provider vouches for the email address.
type Handler struct {
	Users      *userstore.Store
	StateStore *oauthstate.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://braincache.app/api/v1/auth/google/callback"
	FrontendURL  string // where the SPA lives; callback redirects land here
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(users *userstore.Store, states *oauthstate.Store, sm *auth.SessionManager, clientID, clientSecret, baseURL, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        users,
		StateStore:   states,
		SessionMgr:   sm,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/v1/auth/google/callback",
		FrontendURL:  frontendURL,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /api/v1/auth/google and redirects to Google's
// consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		h.redirectToFrontend(w, r, "error=google_not_configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		h.redirectToFrontend(w, r, "error=internal")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, r.URL.Query().Get("return"), expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		h.redirectToFrontend(w, r, "error=internal")
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /api/v1/auth/google/callback: validates
// state, exchanges the code, upserts the user, and signs them in.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.redirectToFrontend(w, r, "error=google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.redirectToFrontend(w, r, "error=invalid_state")
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		h.redirectToFrontend(w, r, "error=internal")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		h.redirectToFrontend(w, r, "error=invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectToFrontend(w, r, "error=invalid_code")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		h.redirectToFrontend(w, r, "error=token_exchange")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		h.redirectToFrontend(w, r, "error=user_info")
		return
	}
	if !googleUser.EmailVerified {
		h.Log.Warn("Google account email not verified", zap.String("email", googleUser.Email))
		h.redirectToFrontend(w, r, "error=email_unverified")
		return
	}

	u, err := h.Users.UpsertByEmail(ctxTimeout, googleUser.Email, googleUser.Name, "google")
	if err != nil {
		h.Log.Error("failed to upsert Google user", zap.Error(err))
		h.redirectToFrontend(w, r, "error=internal")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		h.redirectToFrontend(w, r, "error=session")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("method", "google"))

	dest := safeReturn(returnURL)
	h.redirectToFrontend(w, r, strings.TrimPrefix(dest, "/"))
}

// redirectToFrontend sends the browser back to the SPA with an optional
// query suffix or path.
func (h *Handler) redirectToFrontend(w http.ResponseWriter, r *http.Request, suffix string) {
	dest := h.FrontendURL
	if dest == "" {
		dest = "/"
	}
	if suffix != "" {
		if strings.HasPrefix(suffix, "error=") {
			dest = dest + "/?" + suffix
		} else {
			dest = strings.TrimSuffix(dest, "/") + "/" + suffix
		}
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// safeReturn accepts only same-site relative paths to prevent open
// redirects.
func safeReturn(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/"
	}
	return path
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
