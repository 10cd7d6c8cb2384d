// internal/app/features/shares/links.go
package shares

import (
	"context"
	"errors"
	"net/http"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type linkRequest struct {
	Scope     string `json:"scope"`                // brain | content
	ContentID string `json:"content_id,omitempty"` // required for content scope
}

// linkView is the share-link payload returned to the owner.
type linkView struct {
	Token   string `json:"token"`
	Scope   string `json:"scope"`
	URL     string `json:"url"`
	Created bool   `json:"created"` // false when an existing link was returned
}

// parseLinkScope validates a link request and, for content scope,
// confirms the caller owns the item.
func (h *Handler) parseLinkScope(ctx context.Context, w http.ResponseWriter, req linkRequest, userID primitive.ObjectID) (*primitive.ObjectID, bool) {
	if !models.ValidShareScope(req.Scope) {
		httpapi.Validation(w, `scope must be "brain" or "content"`)
		return nil, false
	}
	if req.Scope == models.ScopeBrain {
		return nil, true
	}

	contentID, err := primitive.ObjectIDFromHex(req.ContentID)
	if err != nil {
		httpapi.Validation(w, "content_id is required for content scope")
		return nil, false
	}
	isOwner, err := accesspolicy.IsOwner(ctx, h.DB, models.ResourceContent, contentID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: resolve link owner", err)
		return nil, false
	}
	if !isOwner {
		httpapi.Forbidden(w)
		return nil, false
	}
	return &contentID, true
}

// HandleEnableLink handles POST /api/v1/shares/links.
//
// Idempotent: enabling an already-shared scope returns the existing
// token unchanged.
func (h *Handler) HandleEnableLink(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req linkRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contentID, ok := h.parseLinkScope(ctx, w, req, userID)
	if !ok {
		return
	}

	link, created, err := h.ShareLinks.Enable(ctx, userID, req.Scope, contentID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: enable link", err)
		return
	}

	if created {
		h.Log.Info("share link enabled",
			zap.String("owner_id", userID.Hex()),
			zap.String("scope", link.Scope))
	}
	httpapi.OK(w, h.linkView(link, created))
}

// HandleDisableLink handles DELETE /api/v1/shares/links.
//
// Deletes the binding outright: the token permanently stops resolving,
// and a later re-enable mints a brand-new token. Disabling an unshared
// scope is a no-op.
func (h *Handler) HandleDisableLink(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req linkRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contentID, ok := h.parseLinkScope(ctx, w, req, userID)
	if !ok {
		return
	}

	if err := h.ShareLinks.Disable(ctx, userID, req.Scope, contentID); err != nil {
		httpapi.ServerError(w, h.Log, "shares: disable link", err)
		return
	}

	h.Log.Info("share link disabled",
		zap.String("owner_id", userID.Hex()),
		zap.String("scope", req.Scope))
	httpapi.NoContent(w)
}

// ServeLinkStatus handles GET /api/v1/shares/links?scope=&content_id=.
// Returns the active link for the scope without minting one.
func (h *Handler) ServeLinkStatus(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	req := linkRequest{
		Scope:     r.URL.Query().Get("scope"),
		ContentID: r.URL.Query().Get("content_id"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contentID, ok := h.parseLinkScope(ctx, w, req, userID)
	if !ok {
		return
	}

	link, err := h.ShareLinks.GetForScope(ctx, userID, req.Scope, contentID)
	if errors.Is(err, sharelinkstore.ErrNotFound) {
		httpapi.OK(w, nil)
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: link status", err)
		return
	}
	httpapi.OK(w, h.linkView(link, false))
}

func (h *Handler) linkView(link models.ShareLink, created bool) linkView {
	return linkView{
		Token:   link.Token,
		Scope:   link.Scope,
		URL:     h.FrontendURL + "/brain/" + link.Token,
		Created: created,
	}
}
