// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the email code authentication routes. All are public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.HandleSignup)
	r.Post("/login", h.HandleRequestCode)
	r.Post("/verify", h.HandleVerify)

	return r
}
