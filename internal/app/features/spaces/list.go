// internal/app/features/spaces/list.go
package spaces

import (
	"context"
	"net/http"

	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
)

// ServeList handles GET /api/v1/spaces, returning the user's own spaces.
// Spaces shared with the user are listed by the shares feature.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	spaces, err := h.Spaces.ListByOwner(ctx, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "spaces: list", err)
		return
	}
	httpapi.OK(w, spaces)
}
