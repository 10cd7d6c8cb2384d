// internal/app/features/contents/handler.go
package contents

import (
	contentstore "github.com/braincachehq/braincache/internal/app/store/contents"
	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for content items: links, documents,
// embeds, and notes.
type Handler struct {
	DB         *mongo.Database
	Contents   *contentstore.Store
	Spaces     *spacestore.Store
	Grants     *grantstore.Store
	ShareLinks *sharelinkstore.Store
	Log        *zap.Logger
}

// NewHandler creates a new contents Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Contents:   contentstore.New(db),
		Spaces:     spacestore.New(db),
		Grants:     grantstore.New(db),
		ShareLinks: sharelinkstore.New(db),
		Log:        logger,
	}
}
