// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	commentstore "github.com/braincachehq/braincache/internal/app/store/comments"
	contentstore "github.com/braincachehq/braincache/internal/app/store/contents"
	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	"github.com/braincachehq/braincache/internal/app/store/oauthstate"
	otpstore "github.com/braincachehq/braincache/internal/app/store/otp"
	reportstore "github.com/braincachehq/braincache/internal/app/store/reports"
	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", userstore.New(db).EnsureIndexes)
	ensure("spaces", spacestore.New(db).EnsureIndexes)
	ensure("contents", contentstore.New(db).EnsureIndexes)
	ensure("grants", grantstore.New(db).EnsureIndexes)
	ensure("share_links", sharelinkstore.New(db).EnsureIndexes)
	ensure("comments", commentstore.New(db).EnsureIndexes)
	ensure("reports", reportstore.New(db).EnsureIndexes)
	ensure("login_codes", otpstore.New(db, 0).EnsureIndexes)
	ensure("oauth_states", oauthstate.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// EnsureAllWithTimeout wraps EnsureAll with a deadline and logs duration.
func EnsureAllWithTimeout(parent context.Context, db *mongo.Database, timeout time.Duration, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := EnsureAll(ctx, db)
	if log != nil {
		log.Info("index ensure complete",
			zap.Duration("took", time.Since(start)),
			zap.Bool("ok", err == nil))
	}
	return err
}
