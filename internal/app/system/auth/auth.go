// Package auth provides cookie-session authentication for the API.
//
// A SessionManager wraps a gorilla CookieStore. LoadSessionUser runs on
// every request and, when a session cookie is present, loads a fresh
// SessionUser through the configured UserFetcher so role and plan changes
// take effect immediately. Handlers read the user via CurrentUser.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is the authenticated identity injected into request context.
type SessionUser struct {
	ID       string
	FullName string
	Email    string
	Role     string // user | admin
	Plan     string // free | pro
}

// UserFetcher loads fresh user data for a session's user ID on each
// request. Returning nil means the user no longer exists or is disabled;
// the request proceeds unauthenticated.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a session user directly into the request context.
// Test-only; bypasses the cookie store.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// SessionManager owns the cookie store and session middleware.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a SessionManager. The session key must be at
// least 32 random characters in production; secure controls the cookie
// Secure flag and SameSite mode.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide >=32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	// Secure cookies get SameSite=None for cross-site SPA deployments;
	// local dev over http uses Lax so cookies are accepted.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// SetUserFetcher installs the per-request user loader.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// SignIn records the user ID in the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are signed in.
// A fetch miss (deleted or disabled user) leaves the request
// unauthenticated rather than failing it.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// A cookie signed with a rotated key fails to decode; clear
			// it so the client stops resending garbage.
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				sess.Options.MaxAge = -1
				_ = sess.Save(r, w)
			}
			next.ServeHTTP(w, r)
			return
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			id, _ := sess.Values[userIDKey].(string)
			if id != "" && sm.fetcher != nil {
				if u := sm.fetcher.FetchUser(r.Context(), id); u != nil {
					r = withUser(r, u)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser); otherwise responds 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpapi.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles;
// otherwise responds 401/403.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				httpapi.Unauthorized(w)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				httpapi.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
