// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"net/http"

	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/normalize"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own record.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// ServeMe handles GET /api/v1/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err == userstore.ErrNotFound {
		httpapi.Unauthorized(w)
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "profile: load user", err)
		return
	}
	httpapi.OK(w, u)
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
}

// HandleUpdateMe handles PATCH /api/v1/me, changing the display name.
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req updateProfileRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	if normalize.Name(req.FullName) == "" {
		httpapi.Validation(w, "full name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, userID, req.FullName); err != nil {
		httpapi.ServerError(w, h.Log, "profile: update", err)
		return
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "profile: reload", err)
		return
	}
	httpapi.OK(w, u)
}
