// internal/app/features/spaces/update.go
package spaces

import (
	"context"
	"net/http"
	"strings"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type updateSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleUpdate handles PATCH /api/v1/spaces/{id}.
//
// Owners and read-write grantees may rename or re-describe a space.
// Ownership itself never moves.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req updateSpaceRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpapi.Validation(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceSpace, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: resolve access", err)
		return
	}
	if !level.CanWrite() {
		httpapi.Forbidden(w)
		return
	}

	if err := h.Spaces.Update(ctx, spaceID, req.Name, strings.TrimSpace(req.Description)); err != nil {
		if err == spacestore.ErrDuplicateName {
			httpapi.Conflict(w, "a space with this name already exists")
			return
		}
		httpapi.ServerError(w, h.Log, "spaces: update", err)
		return
	}

	sp, err := h.Spaces.GetByID(ctx, spaceID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: reload", err)
		return
	}
	httpapi.OK(w, sp)
}
