// internal/app/features/reports/routes.go
package reports

import (
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the report routes. All require a signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Patch("/{id}/status", h.HandleSetStatus)

	return r
}
