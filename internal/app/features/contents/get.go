// internal/app/features/contents/get.go
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
)

// contentView is the detail payload with the requester's resolved
// permission.
type contentView struct {
	Content    models.Content `json:"content"`
	Permission string         `json:"permission"` // owner | read-write | read
}

// ServeGet handles GET /api/v1/contents/{id}.
//
// Owners and item grantees see the item. A grant on a space does not
// open its items here; space grantees read items through the space view.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
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
	if !level.CanRead() {
		httpapi.Forbidden(w)
		return
	}

	c, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: load", err)
		return
	}
	httpapi.OK(w, contentView{Content: c, Permission: level.String()})
}
