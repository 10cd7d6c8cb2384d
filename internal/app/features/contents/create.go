// internal/app/features/contents/create.go
package contents

import (
	"context"
	"net/http"
	"strings"

	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/htmlsanitize"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createContentRequest struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Link    string `json:"link"`
	Body    string `json:"body"`
	SpaceID string `json:"space_id"`
}

// HandleCreate handles POST /api/v1/contents.
//
// The space reference, if present, must name a space the caller owns:
// items can never be filed into someone else's space, not even with a
// read-write grant on it.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req createContentRequest
	if err := httpapi.Decode(r, &req, limits.MaxNoteBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httpapi.Validation(w, "title is required")
		return
	}
	if !models.ValidContentType(req.Type) {
		httpapi.Validation(w, "unknown content type")
		return
	}
	if req.Type == models.ContentNote {
		req.Body = htmlsanitize.Sanitize(req.Body)
	} else if strings.TrimSpace(req.Link) == "" {
		httpapi.Validation(w, "link is required for this content type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	spaceID, err := h.resolveOwnSpace(ctx, req.SpaceID, userID)
	if err != nil {
		httpapi.Validation(w, "space not found")
		return
	}

	c, err := h.Contents.Create(ctx, models.Content{
		Title:   req.Title,
		Type:    req.Type,
		Link:    strings.TrimSpace(req.Link),
		Body:    req.Body,
		OwnerID: userID,
		SpaceID: spaceID,
	})
	if err != nil {
		httpapi.ServerError(w, h.Log, "contents: create", err)
		return
	}

	h.Log.Info("content created",
		zap.String("content_id", c.ID.Hex()),
		zap.String("owner_id", userID.Hex()),
		zap.String("type", c.Type))
	httpapi.Created(w, c)
}

// resolveOwnSpace parses an optional space ID and verifies the caller
// owns it. Empty input means unfiled.
func (h *Handler) resolveOwnSpace(ctx context.Context, raw string, userID primitive.ObjectID) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	spaceID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, err
	}
	sp, err := h.Spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if sp.OwnerID != userID {
		return nil, spacestore.ErrNotFound
	}
	return &spaceID, nil
}
