// internal/app/features/shares/handler.go
package shares

import (
	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides the sharing endpoints: user-to-user grants and public
// share links. All operations here are owner-only except the grantee's
// "shared with me" listing.
type Handler struct {
	DB          *mongo.Database
	Grants      *grantstore.Store
	ShareLinks  *sharelinkstore.Store
	Users       *userstore.Store
	Mail        mailer.Sender
	SiteName    string
	FrontendURL string
	Log         *zap.Logger
}

// NewHandler creates a new shares Handler.
func NewHandler(db *mongo.Database, mail mailer.Sender, siteName, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Grants:      grantstore.New(db),
		ShareLinks:  sharelinkstore.New(db),
		Users:       userstore.New(db),
		Mail:        mail,
		SiteName:    siteName,
		FrontendURL: frontendURL,
		Log:         logger,
	}
}
