// internal/app/features/login/handler.go
package login

import (
	otpstore "github.com/braincachehq/braincache/internal/app/store/otp"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/mailer"
	"go.uber.org/zap"
)

// Handler provides the email one-time-code authentication endpoints:
// signup, code request, and code verification.
type Handler struct {
	Users      *userstore.Store
	Codes      *otpstore.Store
	Mail       mailer.Sender
	SessionMgr *auth.SessionManager
	SiteName   string
	Log        *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(users *userstore.Store, codes *otpstore.Store, mail mailer.Sender, sm *auth.SessionManager, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		Codes:      codes,
		Mail:       mail,
		SessionMgr: sm,
		SiteName:   siteName,
		Log:        logger,
	}
}
