// internal/app/features/spaces/get.go
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
)

// spaceView is the detail payload: the space, its contents, and the
// requester's resolved permission.
type spaceView struct {
	Space      models.Space     `json:"space"`
	Contents   []models.Content `json:"contents"`
	Permission string           `json:"permission"` // owner | read-write | read
}

// ServeGet handles GET /api/v1/spaces/{id}.
//
// Owners and grantees see the space; everyone else gets the same denied
// response whether or not the space exists.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceSpace, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: resolve access", err)
		return
	}
	if !level.CanRead() {
		httpapi.Forbidden(w)
		return
	}

	sp, err := h.Spaces.GetByID(ctx, spaceID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: load", err)
		return
	}

	contents, err := h.Contents.ListBySpace(ctx, spaceID, sp.OwnerID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: list contents", err)
		return
	}
	if contents == nil {
		contents = []models.Content{}
	}

	httpapi.OK(w, spaceView{
		Space:      sp,
		Contents:   contents,
		Permission: level.String(),
	})
}
