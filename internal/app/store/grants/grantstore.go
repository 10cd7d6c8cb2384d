// internal/app/store/grants/grantstore.go
package grantstore

// Grants are directed permission edges stored one document per
// (resource_type, resource_id, grantee_id) triple, enforced by a unique
// index. Ownership checks happen in the access policy / handlers; this
// store only guards data-level invariants (valid enums, upsert
// semantics, idempotent revoke).

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

var (
	// ErrNotFound is returned when no grant exists for the requested pair.
	ErrNotFound = errors.New("grant not found")

	errBadPermission   = errors.New(`permission must be "read" or "read-write"`)
	errBadResourceType = errors.New(`resource type must be "space" or "content"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("grants")}
}

// Upsert creates or replaces the grant for (resourceType, resourceID,
// granteeID). A second grant for the same pair overwrites the permission
// level; no history is kept and no duplicate row is created.
func (s *Store) Upsert(ctx context.Context, resourceType string, resourceID, ownerID, granteeID primitive.ObjectID, permission string) (models.Grant, error) {
	if !models.ValidResourceType(resourceType) {
		return models.Grant{}, errBadResourceType
	}
	if !models.ValidPermission(permission) {
		return models.Grant{}, errBadPermission
	}

	now := time.Now().UTC()
	filter := bson.M{
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"grantee_id":    granteeID,
	}
	update := bson.M{
		"$set": bson.M{
			"permission": permission,
			"owner_id":   ownerID,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var g models.Grant
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&g); err != nil {
		return models.Grant{}, err
	}
	return g, nil
}

// UpdatePermission changes the permission level of an existing grant.
// Unlike Upsert it fails with ErrNotFound when no grant exists.
func (s *Store) UpdatePermission(ctx context.Context, resourceType string, resourceID, granteeID primitive.ObjectID, permission string) error {
	if !models.ValidPermission(permission) {
		return errBadPermission
	}

	res, err := s.c.UpdateOne(ctx, bson.M{
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"grantee_id":    granteeID,
	}, bson.M{"$set": bson.M{
		"permission": permission,
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

// Revoke deletes the grant for (resourceType, resourceID, granteeID).
// Revoking a grant that does not exist is not an error.
func (s *Store) Revoke(ctx context.Context, resourceType string, resourceID, granteeID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"grantee_id":    granteeID,
	})
	return err
}

// Get returns the grant for (resourceType, resourceID, granteeID), or
// ErrNotFound.
func (s *Store) Get(ctx context.Context, resourceType string, resourceID, granteeID primitive.ObjectID) (models.Grant, error) {
	var g models.Grant
	err := s.c.FindOne(ctx, bson.M{
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"grantee_id":    granteeID,
	}).Decode(&g)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Grant{}, ErrNotFound
		}
		return models.Grant{}, err
	}
	return g, nil
}

// GranteeInfo is a grant joined with the grantee's display identity.
type GranteeInfo struct {
	Grant        models.Grant
	GranteeName  string
	GranteeEmail string
}

// ListForResource returns all active grants on a resource together with
// grantee display info, for the owner's sharing management view.
func (s *Store) ListForResource(ctx context.Context, resourceType string, resourceID primitive.ObjectID) ([]GranteeInfo, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "grantee_id",
			"foreignField": "_id",
			"as":           "grantee",
		}}},
		bson.D{{Key: "$unwind", Value: "$grantee"}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": 1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []GranteeInfo
	for cur.Next(ctx) {
		var row struct {
			models.Grant `bson:",inline"`
			Grantee      struct {
				FullName string `bson:"full_name"`
				Email    string `bson:"email"`
			} `bson:"grantee"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, GranteeInfo{
			Grant:        row.Grant,
			GranteeName:  row.Grantee.FullName,
			GranteeEmail: row.Grantee.Email,
		})
	}
	return out, cur.Err()
}

// SharedResource is a grant joined with the resource owner's display
// identity, for the grantee's "shared with me" view.
type SharedResource struct {
	Grant      models.Grant
	OwnerName  string
	OwnerEmail string
}

// ListForGrantee returns all resources of the given type shared with the
// user, together with the resolved permission and owner info.
func (s *Store) ListForGrantee(ctx context.Context, resourceType string, granteeID primitive.ObjectID) ([]SharedResource, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"resource_type": resourceType,
			"grantee_id":    granteeID,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		bson.D{{Key: "$unwind", Value: "$owner"}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []SharedResource
	for cur.Next(ctx) {
		var row struct {
			models.Grant `bson:",inline"`
			Owner        struct {
				FullName string `bson:"full_name"`
				Email    string `bson:"email"`
			} `bson:"owner"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, SharedResource{
			Grant:      row.Grant,
			OwnerName:  row.Owner.FullName,
			OwnerEmail: row.Owner.Email,
		})
	}
	return out, cur.Err()
}

// DeleteByResource removes every grant on a resource. Used when the
// resource itself is deleted.
func (s *Store) DeleteByResource(ctx context.Context, resourceType string, resourceID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the grants collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// At most one grant per (resource, grantee)
		{
			Keys: bson.D{
				{Key: "resource_type", Value: 1},
				{Key: "resource_id", Value: 1},
				{Key: "grantee_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_grant_resource_grantee"),
		},
		// Grantee's "shared with me" listing
		{
			Keys:    bson.D{{Key: "grantee_id", Value: 1}, {Key: "resource_type", Value: 1}},
			Options: options.Index().SetName("idx_grant_grantee_type"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
