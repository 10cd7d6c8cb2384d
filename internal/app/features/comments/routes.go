// internal/app/features/comments/routes.go
package comments

import (
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the comment routes. All require a signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)     // ?space=<id>
	r.Post("/", h.HandleCreate) // body carries space_id
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
