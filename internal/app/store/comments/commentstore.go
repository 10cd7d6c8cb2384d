// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrNotFound is returned when a comment does not exist.
var ErrNotFound = errors.New("comment not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Create inserts a new comment. Authorization (at least read access on
// the space) is enforced by the caller.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	now := time.Now().UTC()
	cm.ID = primitive.NewObjectID()
	cm.Edited = false
	cm.CreatedAt = now
	cm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// GetByID retrieves a comment by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	var cm models.Comment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Comment{}, ErrNotFound
		}
		return models.Comment{}, err
	}
	return cm, nil
}

// UpdateBody replaces the comment body and marks the comment edited.
func (s *Store) UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"body":       body,
		"edited":     true,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListBySpace returns all comments on a space, oldest first.
func (s *Store) ListBySpace(ctx context.Context, spaceID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"space_id": spaceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteBySpace removes all comments on a space. Used when the space is
// deleted.
func (s *Store) DeleteBySpace(ctx context.Context, spaceID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"space_id": spaceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the comments collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "space_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_comment_space_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
