// internal/app/features/contents/list.go
package contents

import (
	"context"
	"net/http"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /api/v1/contents and GET /api/v1/contents?space=<id>.
//
// Without a space filter it returns the caller's whole brain. With one,
// it returns the contents of that space, which works for owners and
// space grantees alike.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rawSpace := r.URL.Query().Get("space")
	if rawSpace == "" {
		items, err := h.Contents.ListByOwner(ctx, userID)
		if err != nil {
			httpapi.ServerError(w, h.Log, "contents: list", err)
			return
		}
		httpapi.OK(w, items)
		return
	}

	spaceID, err := primitive.ObjectIDFromHex(rawSpace)
	if err != nil {
		httpapi.Forbidden(w)
		return
	}

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceSpace, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: resolve space access", err)
		return
	}
	if !level.CanRead() {
		httpapi.Forbidden(w)
		return
	}

	sp, err := h.Spaces.GetByID(ctx, spaceID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: load space", err)
		return
	}
	items, err := h.Contents.ListBySpace(ctx, spaceID, sp.OwnerID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: list by space", err)
		return
	}
	httpapi.OK(w, items)
}
