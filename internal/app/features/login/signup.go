// internal/app/features/login/signup.go
package login

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/normalize"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.uber.org/zap"
)

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// HandleSignup handles POST /api/v1/auth/signup.
//
// Creates the account and emails a login code. Signing up with an email
// that already has an account is a conflict; the caller should request a
// login code instead.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}

	req.FullName = normalize.Name(req.FullName)
	req.Email = normalize.Email(req.Email)
	if req.FullName == "" {
		httpapi.Validation(w, "full name is required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		httpapi.Validation(w, "a valid email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.Users.Create(ctx, models.User{
		FullName:   req.FullName,
		Email:      req.Email,
		AuthMethod: "otp",
		Role:       models.RoleUser,
		Plan:       models.PlanFree,
	})
	if err == userstore.ErrDuplicateEmail {
		httpapi.Conflict(w, "an account with this email already exists")
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "signup: create user", err)
		return
	}

	if err := h.sendLoginCode(ctx, req.Email); err != nil {
		httpapi.ServerError(w, h.Log, "signup: send login code", err)
		return
	}

	h.Log.Info("user signed up", zap.String("email", req.Email))
	httpapi.NoContent(w)
}
