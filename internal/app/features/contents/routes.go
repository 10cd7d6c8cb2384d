// internal/app/features/contents/routes.go
package contents

import (
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts content CRUD routes. All require a signed-in user;
// anonymous share-link access goes through the brain feature instead.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
