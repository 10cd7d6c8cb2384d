// internal/app/store/sharelinks/sharelinkstore.go
package sharelinkstore

// Share links bind opaque tokens to a resource scope. The lifecycle is
// Unshared -> Shared (enable mints a token) -> Unshared (disable deletes
// the row, the token never resolves again) -> Shared (re-enable mints a
// brand-new token). Enable is idempotent: while a link is active, enable
// returns the existing token unchanged.

import (
	"context"
	"errors"
	"time"

	"github.com/braincachehq/braincache/internal/app/system/sharetoken"
	"github.com/braincachehq/braincache/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrNotFound is returned when a token is unknown or was disabled.
	// Never distinguishes the two; there are no tombstones.
	ErrNotFound = errors.New("share link not found")

	errBadScope = errors.New(`scope must be "brain" or "content"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("share_links")}
}

// scopeFilter builds the identity filter for an (owner, scope) pair.
// Content-scope links are keyed per content item.
func scopeFilter(ownerID primitive.ObjectID, scope string, contentID *primitive.ObjectID) bson.M {
	f := bson.M{"owner_id": ownerID, "scope": scope}
	if scope == models.ScopeContent && contentID != nil {
		f["content_id"] = *contentID
	}
	return f
}

// Enable returns the active share link for the scope, minting one if none
// exists. The created flag reports whether a new token was minted.
func (s *Store) Enable(ctx context.Context, ownerID primitive.ObjectID, scope string, contentID *primitive.ObjectID) (models.ShareLink, bool, error) {
	if !models.ValidShareScope(scope) {
		return models.ShareLink{}, false, errBadScope
	}
	if scope == models.ScopeContent && contentID == nil {
		return models.ShareLink{}, false, errBadScope
	}

	filter := scopeFilter(ownerID, scope, contentID)

	var existing models.ShareLink
	err := s.c.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.ShareLink{}, false, err
	}

	link := models.ShareLink{
		ID:        primitive.NewObjectID(),
		Token:     sharetoken.New(),
		OwnerID:   ownerID,
		Scope:     scope,
		ContentID: contentID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, link); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost an enable race; the winner's token is the active one.
			if ferr := s.c.FindOne(ctx, filter).Decode(&existing); ferr == nil {
				return existing, false, nil
			}
		}
		return models.ShareLink{}, false, err
	}
	return link, true, nil
}

// Disable deletes the binding for the scope. Subsequent resolves of the
// old token fail with ErrNotFound. Disabling an unshared scope is a no-op.
func (s *Store) Disable(ctx context.Context, ownerID primitive.ObjectID, scope string, contentID *primitive.ObjectID) error {
	if !models.ValidShareScope(scope) {
		return errBadScope
	}
	_, err := s.c.DeleteOne(ctx, scopeFilter(ownerID, scope, contentID))
	return err
}

// Resolve looks up a token. Unauthenticated; access through a resolved
// link is always read-only regardless of any grants the requester holds.
func (s *Store) Resolve(ctx context.Context, token string) (models.ShareLink, error) {
	var link models.ShareLink
	err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ShareLink{}, ErrNotFound
		}
		return models.ShareLink{}, err
	}
	return link, nil
}

// GetForScope returns the active link for the scope without minting.
func (s *Store) GetForScope(ctx context.Context, ownerID primitive.ObjectID, scope string, contentID *primitive.ObjectID) (models.ShareLink, error) {
	var link models.ShareLink
	err := s.c.FindOne(ctx, scopeFilter(ownerID, scope, contentID)).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ShareLink{}, ErrNotFound
		}
		return models.ShareLink{}, err
	}
	return link, nil
}

// DeleteByContent removes the content-scope link for an item, if any.
// Used when the item itself is deleted.
func (s *Store) DeleteByContent(ctx context.Context, contentID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"scope": models.ScopeContent, "content_id": contentID})
	return err
}

// EnsureIndexes creates indexes for the share_links collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Tokens are globally unique
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_sharelink_token"),
		},
		// One active brain link per owner; one content link per item.
		// content_id is absent for brain scope, so the partial unique
		// index on the triple covers both forms.
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "scope", Value: 1},
				{Key: "content_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_sharelink_scope"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
