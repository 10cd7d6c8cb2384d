// internal/app/features/brain/handler.go
package brain

import (
	"context"
	"errors"
	"net/http"

	contentstore "github.com/braincachehq/braincache/internal/app/store/contents"
	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler resolves public share tokens. This is the only anonymous read
// path in the API; everything it returns is read-only by construction.
type Handler struct {
	ShareLinks *sharelinkstore.Store
	Contents   *contentstore.Store
	Users      *userstore.Store
	Log        *zap.Logger
}

// NewHandler creates a new brain Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		ShareLinks: sharelinkstore.New(db),
		Contents:   contentstore.New(db),
		Users:      userstore.New(db),
		Log:        logger,
	}
}

// brainView is the public payload for a resolved share token.
type brainView struct {
	OwnerName    string           `json:"owner_name"`
	IsSingleItem bool             `json:"is_single_item"`
	Contents     []models.Content `json:"contents"`
}

// ServeResolve handles GET /api/v1/brain/{token}.
//
// A brain-scope token returns every item the owner has saved; a
// content-scope token returns exactly one. Unknown and disabled tokens
// are indistinguishable: both are a plain 404.
func (h *Handler) ServeResolve(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	link, err := h.ShareLinks.Resolve(ctx, token)
	if errors.Is(err, sharelinkstore.ErrNotFound) {
		httpapi.NotFound(w, "share link not found")
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "brain: resolve token", err)
		return
	}

	view := brainView{Contents: []models.Content{}}
	if owner, err := h.Users.GetByID(ctx, link.OwnerID); err == nil {
		view.OwnerName = owner.FullName
	}

	if link.Scope == models.ScopeContent && link.ContentID != nil {
		view.IsSingleItem = true
		c, err := h.Contents.GetByID(ctx, *link.ContentID)
		if err == contentstore.ErrNotFound {
			// Item deleted after the link was minted.
			httpapi.NotFound(w, "share link not found")
			return
		}
		if err != nil {
			httpapi.ServerError(w, h.Log, "brain: load content", err)
			return
		}
		view.Contents = append(view.Contents, c)
	} else {
		items, err := h.Contents.ListByOwner(ctx, link.OwnerID)
		if err != nil {
			httpapi.ServerError(w, h.Log, "brain: list contents", err)
			return
		}
		if items != nil {
			view.Contents = items
		}
	}

	httpapi.OK(w, view)
}
