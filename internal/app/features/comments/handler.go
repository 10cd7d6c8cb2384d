// internal/app/features/comments/handler.go
package comments

import (
	commentstore "github.com/braincachehq/braincache/internal/app/store/comments"
	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides comment endpoints. Comments attach to spaces; posting
// requires at least read access to the space, so commenting is how
// grantees leave feedback on a shared brain.
type Handler struct {
	DB       *mongo.Database
	Comments *commentstore.Store
	Spaces   *spacestore.Store
	Log      *zap.Logger
}

// NewHandler creates a new comments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Comments: commentstore.New(db),
		Spaces:   spacestore.New(db),
		Log:      logger,
	}
}
