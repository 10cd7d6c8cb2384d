// internal/app/features/spaces/handler.go
package spaces

import (
	commentstore "github.com/braincachehq/braincache/internal/app/store/comments"
	contentstore "github.com/braincachehq/braincache/internal/app/store/contents"
	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for space management. Spaces are the
// only grouping mechanism; every space has exactly one owner.
type Handler struct {
	DB         *mongo.Database
	Spaces     *spacestore.Store
	Contents   *contentstore.Store
	Grants     *grantstore.Store
	ShareLinks *sharelinkstore.Store
	Comments   *commentstore.Store
	Limits     limits.SpaceLimits
	Log        *zap.Logger
}

// NewHandler creates a new spaces Handler.
func NewHandler(db *mongo.Database, spaceLimits limits.SpaceLimits, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Spaces:     spacestore.New(db),
		Contents:   contentstore.New(db),
		Grants:     grantstore.New(db),
		ShareLinks: sharelinkstore.New(db),
		Comments:   commentstore.New(db),
		Limits:     spaceLimits,
		Log:        logger,
	}
}
