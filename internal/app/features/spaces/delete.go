// internal/app/features/spaces/delete.go
package spaces

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

// HandleDelete handles DELETE /api/v1/spaces/{id}. Owner only.
//
// Deleting a space also removes its contents and every derived artifact:
// space grants, per-content grants and share links, and comments. Grants
// never outlive the resource they point at.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	spaceID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Forbidden(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	isOwner, err := accesspolicy.IsOwner(ctx, h.DB, models.ResourceSpace, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: resolve owner", err)
		return
	}
	if !isOwner {
		// Grantees, even read-write ones, cannot delete.
		httpapi.Forbidden(w)
		return
	}

	contents, err := h.Contents.ListBySpace(ctx, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: list contents for delete", err)
		return
	}

	// Per-content cleanup first, then the space-level artifacts.
	for _, c := range contents {
		if _, err := h.Grants.DeleteByResource(ctx, models.ResourceContent, c.ID); err != nil {
			httpapi.ServerError(w, h.Log, "spaces: delete content grants", err)
			return
		}
		if err := h.ShareLinks.DeleteByContent(ctx, c.ID); err != nil {
			httpapi.ServerError(w, h.Log, "spaces: delete content share links", err)
			return
		}
	}
	if _, err := h.Contents.DeleteBySpace(ctx, spaceID); err != nil {
		httpapi.ServerError(w, h.Log, "spaces: delete contents", err)
		return
	}
	if _, err := h.Grants.DeleteByResource(ctx, models.ResourceSpace, spaceID); err != nil {
		httpapi.ServerError(w, h.Log, "spaces: delete grants", err)
		return
	}
	if _, err := h.Comments.DeleteBySpace(ctx, spaceID); err != nil {
		httpapi.ServerError(w, h.Log, "spaces: delete comments", err)
		return
	}
	if _, err := h.Spaces.Delete(ctx, spaceID); err != nil {
		httpapi.ServerError(w, h.Log, "spaces: delete", err)
		return
	}

	h.Log.Info("space deleted",
		zap.String("space_id", spaceID.Hex()),
		zap.String("owner_id", userID.Hex()),
		zap.Int("contents_removed", len(contents)))
	httpapi.NoContent(w)
}
