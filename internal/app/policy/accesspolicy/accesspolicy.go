// Package accesspolicy resolves what a user may do with a space or a
// content item.
//
// Resolution rules:
//   - The resource owner always has full access; grants to an owner on
//     their own resource never reduce it
//   - Otherwise the grant for (resource, user) decides: read or read-write
//   - No grant, or no such resource, means no access
//
// Handlers translate LevelNone into the same not-found/denied response
// regardless of whether the resource exists, so existence is not leaked.
package accesspolicy

import (
	"context"
	"errors"

	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Level is the effective access a user holds on a resource.
type Level int

const (
	LevelNone Level = iota
	LevelRead
	LevelReadWrite
	LevelOwner
)

// CanRead reports whether the level allows viewing the resource.
func (l Level) CanRead() bool { return l >= LevelRead }

// CanWrite reports whether the level allows modifying the resource.
func (l Level) CanWrite() bool { return l >= LevelReadWrite }

// String returns the wire form of the level.
func (l Level) String() string {
	switch l {
	case LevelOwner:
		return "owner"
	case LevelReadWrite:
		return models.PermissionReadWrite
	case LevelRead:
		return models.PermissionRead
	default:
		return "none"
	}
}

func collectionFor(resourceType string) string {
	if resourceType == models.ResourceSpace {
		return "spaces"
	}
	return "contents"
}

// ResourceOwner returns the owner of a space or content item. The found
// flag is false when the resource does not exist.
func ResourceOwner(ctx context.Context, db *mongo.Database, resourceType string, resourceID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	var doc struct {
		OwnerID primitive.ObjectID `bson:"owner_id"`
	}
	err := db.Collection(collectionFor(resourceType)).FindOne(ctx, bson.M{"_id": resourceID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, false, nil
		}
		return primitive.NilObjectID, false, err
	}
	return doc.OwnerID, true, nil
}

// Effective resolves the access level userID holds on the resource.
// Missing resources resolve to LevelNone rather than an error, so
// callers can respond uniformly without probing existence first.
func Effective(ctx context.Context, db *mongo.Database, resourceType string, resourceID, userID primitive.ObjectID) (Level, error) {
	ownerID, found, err := ResourceOwner(ctx, db, resourceType, resourceID)
	if err != nil {
		return LevelNone, err
	}
	if !found {
		return LevelNone, nil
	}
	if ownerID == userID {
		return LevelOwner, nil
	}

	g, err := grantstore.New(db).Get(ctx, resourceType, resourceID, userID)
	if err != nil {
		if errors.Is(err, grantstore.ErrNotFound) {
			return LevelNone, nil
		}
		return LevelNone, err
	}
	if g.Permission == models.PermissionReadWrite {
		return LevelReadWrite, nil
	}
	return LevelRead, nil
}

// IsOwner reports whether userID owns the resource. A missing resource
// is simply not owned.
func IsOwner(ctx context.Context, db *mongo.Database, resourceType string, resourceID, userID primitive.ObjectID) (bool, error) {
	ownerID, found, err := ResourceOwner(ctx, db, resourceType, resourceID)
	if err != nil {
		return false, err
	}
	return found && ownerID == userID, nil
}
