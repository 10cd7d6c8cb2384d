// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// Handler clears the session.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sm, Log: logger}
}

// HandleLogout handles POST /api/v1/auth/logout. Logging out while not
// signed in is fine; the cookie is cleared either way.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		httpapi.ServerError(w, h.Log, "logout: clear session", err)
		return
	}
	httpapi.NoContent(w)
}
