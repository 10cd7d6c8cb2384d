// internal/app/features/login/request.go
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	otpstore "github.com/braincachehq/braincache/internal/app/store/otp"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/mailer"
	"github.com/braincachehq/braincache/internal/app/system/normalize"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email string `json:"email"`
}

// HandleRequestCode handles POST /api/v1/auth/login.
//
// Emails a one-time code to the address if an account exists. The
// response is the same either way so the endpoint cannot be used to
// probe which emails have accounts.
func (h *Handler) HandleRequestCode(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}

	req.Email = normalize.Email(req.Email)
	if !strings.Contains(req.Email, "@") {
		httpapi.Validation(w, "a valid email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := h.Users.GetByEmail(ctx, req.Email)
	if err == userstore.ErrNotFound {
		h.Log.Info("login code requested for unknown email", zap.String("email", req.Email))
		httpapi.NoContent(w)
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "login: lookup user", err)
		return
	}

	if err := h.sendLoginCode(ctx, req.Email); err != nil {
		if errors.Is(err, otpstore.ErrTooManyResends) {
			httpapi.Validation(w, "too many code requests; try again later")
			return
		}
		httpapi.ServerError(w, h.Log, "login: send login code", err)
		return
	}
	httpapi.NoContent(w)
}

// sendLoginCode mints a code and mails it.
func (h *Handler) sendLoginCode(ctx context.Context, email string) error {
	code, err := h.Codes.Issue(ctx, email)
	if err != nil {
		return err
	}

	minutes := int(h.Codes.Expiry().Minutes())
	e := mailer.BuildLoginCodeEmail(mailer.LoginCodeData{
		SiteName:  h.SiteName,
		Code:      code,
		ExpiresIn: fmt.Sprintf("%d minutes", minutes),
	})
	e.To = email
	return h.Mail.Send(e)
}
