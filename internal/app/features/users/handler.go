// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// searchLimit caps the number of directory results per query.
const searchLimit = 10

// Handler serves the user directory used to pick grantees when sharing.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// directoryEntry is the reduced public shape of a user. Plan, role, and
// timestamps stay private.
type directoryEntry struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ServeSearch handles GET /api/v1/users?email=<prefix>.
//
// Requires at least 3 characters so the directory can't be trawled.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("email")
	if len(prefix) < 3 {
		httpapi.Validation(w, "email query must be at least 3 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	found, err := h.Users.SearchByEmailPrefix(ctx, prefix, searchLimit)
	if err != nil {
		httpapi.ServerError(w, h.Log, "users: search", err)
		return
	}

	entries := make([]directoryEntry, 0, len(found))
	for _, u := range found {
		entries = append(entries, directoryEntry{
			ID:       u.ID.Hex(),
			FullName: u.FullName,
			Email:    u.Email,
		})
	}
	httpapi.OK(w, entries)
}
