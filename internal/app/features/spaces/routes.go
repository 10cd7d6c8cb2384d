// internal/app/features/spaces/routes.go
package spaces

import (
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts space CRUD routes. All require a signed-in user; per-space
// access is resolved inside the handlers so shared spaces work too.
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
