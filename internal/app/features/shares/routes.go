// internal/app/features/shares/routes.go
package shares

import (
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the sharing management routes. All require a signed-in
// user; anonymous share-link resolution lives in the brain feature.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	// User-to-user grants (owner-only except shared-with-me)
	r.Post("/grants", h.HandleGrant)
	r.Patch("/grants", h.HandleUpdatePermission)
	r.Delete("/grants", h.HandleRevoke)
	r.Get("/grants", h.ServeGrantsForResource)
	r.Get("/shared-with-me", h.ServeSharedWithMe)

	// Public share links (owner-only)
	r.Post("/links", h.HandleEnableLink)
	r.Delete("/links", h.HandleDisableLink)
	r.Get("/links", h.ServeLinkStatus)

	return r
}
