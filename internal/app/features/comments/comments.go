// internal/app/features/comments/comments.go
package comments

import (
	"context"
	"net/http"
	"strings"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	commentstore "github.com/braincachehq/braincache/internal/app/store/comments"
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/htmlsanitize"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createCommentRequest struct {
	SpaceID string `json:"space_id"`
	Body    string `json:"body"`
}

// ServeList handles GET /api/v1/comments?space=<id>.
//
// Anyone with at least read access to the space sees its comments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	spaceID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("space"))
	if err != nil {
		httpapi.Validation(w, "space query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceSpace, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: resolve access", err)
		return
	}
	if !level.CanRead() {
		httpapi.Forbidden(w)
		return
	}

	list, err := h.Comments.ListBySpace(ctx, spaceID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: list", err)
		return
	}
	if list == nil {
		list = []models.Comment{}
	}
	httpapi.OK(w, list)
}

// HandleCreate handles POST /api/v1/comments.
//
// Posting needs at least read access to the space; read is enough
// because commenting is feedback, not content modification.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}
	sessionUser, _ := auth.CurrentUser(r)

	var req createCommentRequest
	if err := httpapi.Decode(r, &req, limits.MaxNoteBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	spaceID, err := primitive.ObjectIDFromHex(req.SpaceID)
	if err != nil {
		httpapi.Validation(w, "space_id is required")
		return
	}
	body := htmlsanitize.Sanitize(strings.TrimSpace(req.Body))
	if body == "" {
		httpapi.Validation(w, "body is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceSpace, spaceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: resolve access", err)
		return
	}
	if !level.CanRead() {
		httpapi.Forbidden(w)
		return
	}

	cm, err := h.Comments.Create(ctx, models.Comment{
		SpaceID:    spaceID,
		AuthorID:   userID,
		AuthorName: sessionUser.FullName,
		Body:       body,
	})
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: create", err)
		return
	}

	h.Log.Info("comment created",
		zap.String("comment_id", cm.ID.Hex()),
		zap.String("space_id", spaceID.Hex()))
	httpapi.Created(w, cm)
}

type updateCommentRequest struct {
	Body string `json:"body"`
}

// HandleUpdate handles PATCH /api/v1/comments/{id}. Author-only; the
// edit marks the comment as edited.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Forbidden(w)
		return
	}

	var req updateCommentRequest
	if err := httpapi.Decode(r, &req, limits.MaxNoteBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	body := htmlsanitize.Sanitize(strings.TrimSpace(req.Body))
	if body == "" {
		httpapi.Validation(w, "body is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cm, err := h.Comments.GetByID(ctx, commentID)
	if err == commentstore.ErrNotFound {
		httpapi.Forbidden(w)
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: load", err)
		return
	}
	if cm.AuthorID != userID {
		httpapi.Forbidden(w)
		return
	}

	if err := h.Comments.UpdateBody(ctx, commentID, body); err != nil {
		httpapi.ServerError(w, h.Log, "comments: update", err)
		return
	}

	updated, err := h.Comments.GetByID(ctx, commentID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: reload", err)
		return
	}
	httpapi.OK(w, updated)
}

// HandleDelete handles DELETE /api/v1/comments/{id}.
//
// The author or the space owner may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Forbidden(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cm, err := h.Comments.GetByID(ctx, commentID)
	if err == commentstore.ErrNotFound {
		httpapi.Forbidden(w)
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "comments: load", err)
		return
	}

	allowed := cm.AuthorID == userID
	if !allowed {
		isOwner, err := accesspolicy.IsOwner(ctx, h.DB, models.ResourceSpace, cm.SpaceID, userID)
		if err != nil {
			httpapi.ServerError(w, h.Log, "comments: resolve space owner", err)
			return
		}
		allowed = isOwner
	}
	if !allowed {
		httpapi.Forbidden(w)
		return
	}

	if _, err := h.Comments.Delete(ctx, commentID); err != nil {
		httpapi.ServerError(w, h.Log, "comments: delete", err)
		return
	}
	httpapi.NoContent(w)
}
