// internal/app/store/contents/contentstore.go
package contentstore

import (
	"context"
	"errors"
	"time"

	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrNotFound is returned when a content item does not exist.
	ErrNotFound = errors.New("content not found")

	errBadType = errors.New(`type must be one of "link", "document", "youtube", "twitter", "article", "note"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contents")}
}

// Create inserts a new content item after validating the type tag.
// The caller is responsible for having verified that SpaceID, if set,
// references a space owned by the same user.
func (s *Store) Create(ctx context.Context, c models.Content) (models.Content, error) {
	if !models.ValidContentType(c.Type) {
		return models.Content{}, errBadType
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.TitleCI = text.Fold(c.Title)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

// GetByID retrieves a content item by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Content, error) {
	var c models.Content
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Content{}, ErrNotFound
		}
		return models.Content{}, err
	}
	return c, nil
}

// Update modifies a content item's mutable fields. Owner never changes;
// the caller validates any space re-assignment against ownership.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, link, body string, spaceID *primitive.ObjectID) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
		"link":       link,
		"body":       body,
	}
	if title != "" {
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}

	update := bson.M{"$set": set}
	if spaceID != nil {
		set["space_id"] = *spaceID
	} else {
		update["$unset"] = bson.M{"space_id": ""}
	}

	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a content item by ID. Returns the number deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByOwner returns all content items owned by the given user, newest
// first. This is the whole-brain listing used by brain-scope share links.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Content, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Content
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListBySpace returns content filed in the given space, restricted to the
// space owner's items.
func (s *Store) ListBySpace(ctx context.Context, spaceID, ownerID primitive.ObjectID) ([]models.Content, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"space_id": spaceID, "owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Content
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteBySpace removes all content filed in a space. Used when the owner
// deletes the space itself.
func (s *Store) DeleteBySpace(ctx context.Context, spaceID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"space_id": spaceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the contents collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_content_owner_created"),
		},
		{
			Keys:    bson.D{{Key: "space_id", Value: 1}},
			Options: options.Index().SetName("idx_content_space"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
