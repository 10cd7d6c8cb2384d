// internal/app/features/reports/handler.go
package reports

import (
	contentstore "github.com/braincachehq/braincache/internal/app/store/contents"
	reportstore "github.com/braincachehq/braincache/internal/app/store/reports"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides abuse report endpoints. Reports are visible to the
// reported content's owner and to admins; nobody else.
type Handler struct {
	DB       *mongo.Database
	Reports  *reportstore.Store
	Contents *contentstore.Store
	Log      *zap.Logger
}

// NewHandler creates a new reports Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Reports:  reportstore.New(db),
		Contents: contentstore.New(db),
		Log:      logger,
	}
}
