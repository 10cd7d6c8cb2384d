// internal/app/features/login/verify.go
package login

import (
	"context"
	"errors"
	"net/http"

	otpstore "github.com/braincachehq/braincache/internal/app/store/otp"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/normalize"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleVerify handles POST /api/v1/auth/verify.
//
// Exchanges a one-time code for a signed-in session and returns the
// user record.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}

	req.Email = normalize.Email(req.Email)
	if req.Email == "" || len(req.Code) != otpstore.CodeLength {
		httpapi.Validation(w, "email and 6-digit code are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Codes.Verify(ctx, req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, otpstore.ErrNotFound), errors.Is(err, otpstore.ErrInvalidCode):
			httpapi.Validation(w, "invalid or expired code")
		case errors.Is(err, otpstore.ErrTooManyAttempts):
			httpapi.Validation(w, "too many attempts; request a new code")
		default:
			httpapi.ServerError(w, h.Log, "verify: check code", err)
		}
		return
	}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err == userstore.ErrNotFound {
		// Code verified but account vanished in between.
		httpapi.Validation(w, "invalid or expired code")
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "verify: load user", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		httpapi.ServerError(w, h.Log, "verify: save session", err)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("method", "otp"))
	httpapi.OK(w, u)
}
