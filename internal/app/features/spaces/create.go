// internal/app/features/spaces/create.go
package spaces

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.uber.org/zap"
)

type createSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate handles POST /api/v1/spaces.
//
// Free accounts are capped at a small number of owned spaces; pro
// accounts get a much larger cap. Shared spaces never count against the
// grantee's cap.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, plan, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req createSpaceRequest
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

	owned, err := h.Spaces.CountByOwner(ctx, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: count for cap", err)
		return
	}
	limit := h.Limits.ForPlan(plan)
	if owned >= int64(limit) {
		httpapi.Validation(w, fmt.Sprintf("space limit reached (%d); upgrade to create more", limit))
		return
	}

	sp, err := h.Spaces.Create(ctx, models.Space{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     userID,
	})
	if err == spacestore.ErrDuplicateName {
		httpapi.Conflict(w, "a space with this name already exists")
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: create", err)
		return
	}

	h.Log.Info("space created",
		zap.String("space_id", sp.ID.Hex()),
		zap.String("owner_id", userID.Hex()))
	httpapi.Created(w, sp)
}
