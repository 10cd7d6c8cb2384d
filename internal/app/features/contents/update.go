// internal/app/features/contents/update.go
package contents

import (
	"context"
	"net/http"
	"strings"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/htmlsanitize"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type updateContentRequest struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Body    string `json:"body"`
	SpaceID string `json:"space_id"`
}

// HandleUpdate handles PATCH /api/v1/contents/{id}.
//
// Owners and read-write grantees may edit. Re-filing into a space is
// owner-only since the space must belong to the item's owner.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	contentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Forbidden(w)
		return
	}

	var req updateContentRequest
	if err := httpapi.Decode(r, &req, limits.MaxNoteBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httpapi.Validation(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceContent, contentID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: resolve access", err)
		return
	}
	if !level.CanWrite() {
		httpapi.Forbidden(w)
		return
	}

	existing, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: load", err)
		return
	}

	if existing.Type == models.ContentNote {
		req.Body = htmlsanitize.Sanitize(req.Body)
	}

	// Space re-filing is resolved against the item's owner, not the
	// caller: a read-write grantee cannot move the item at all, and the
	// owner can only file it into their own spaces.
	spaceID := existing.SpaceID
	if req.SpaceID != "" {
		if level != accesspolicy.LevelOwner {
			httpapi.Forbidden(w)
			return
		}
		spaceID, err = h.resolveOwnSpace(ctx, req.SpaceID, existing.OwnerID)
		if err != nil {
			httpapi.Validation(w, "space not found")
			return
		}
	}

	if err := h.Contents.Update(ctx, contentID, req.Title, strings.TrimSpace(req.Link), req.Body, spaceID); err != nil {
		httpapi.ServerError(w, h.Log, "contents: update", err)
		return
	}

	c, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: reload", err)
		return
	}
	httpapi.OK(w, c)
}
