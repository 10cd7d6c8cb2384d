// internal/app/store/spaces/spacestore.go
package spacestore

import (
	"context"
	"errors"
	"time"

	"github.com/braincachehq/braincache/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	// ErrDuplicateName is returned when the owner already has a space with this name.
	ErrDuplicateName = errors.New("a space with this name already exists")
	// ErrNotFound is returned when a space does not exist.
	ErrNotFound = errors.New("space not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("spaces")}
}

// Create inserts a new space. The owner must already be set and is
// immutable afterwards.
func (s *Store) Create(ctx context.Context, sp models.Space) (models.Space, error) {
	now := time.Now().UTC()
	sp.ID = primitive.NewObjectID()
	sp.NameCI = text.Fold(sp.Name)
	sp.CreatedAt = now
	sp.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sp); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Space{}, ErrDuplicateName
		}
		return models.Space{}, err
	}
	return sp, nil
}

// GetByID retrieves a space by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Space, error) {
	var sp models.Space
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Space{}, ErrNotFound
		}
		return models.Space{}, err
	}
	return sp, nil
}

// Update modifies a space's mutable fields (name, description). The owner
// reference never changes.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, description string) error {
	set := bson.M{
		"updated_at":  time.Now().UTC(),
		"description": description,
	}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a space by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByOwner returns all spaces owned by the given user, sorted by name.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Space, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var spaces []models.Space
	if err := cur.All(ctx, &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}

// CountByOwner returns the number of spaces the user owns. Used to
// enforce plan-based creation caps.
func (s *Store) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"owner_id": ownerID})
}

// EnsureIndexes creates indexes for the spaces collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// One space name per owner
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_space_owner_name"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_space_owner"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
