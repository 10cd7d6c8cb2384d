// internal/app/features/contents/delete.go
package contents

import (
	"context"
	"net/http"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /api/v1/contents/{id}.
//
// Owners and read-write grantees may delete. Deleting an item also
// removes its grants and any content-scope share link so revoked tokens
// and stale edges never linger.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.Grants.DeleteByResource(ctx, models.ResourceContent, contentID); err != nil {
		httpapi.ServerError(w, h.Log, "contents: delete grants", err)
		return
	}
	if err := h.ShareLinks.DeleteByContent(ctx, contentID); err != nil {
		httpapi.ServerError(w, h.Log, "contents: delete share links", err)
		return
	}
	if _, err := h.Contents.Delete(ctx, contentID); err != nil {
		httpapi.ServerError(w, h.Log, "contents: delete", err)
		return
	}

	h.Log.Info("content deleted",
		zap.String("content_id", contentID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpapi.NoContent(w)
}
