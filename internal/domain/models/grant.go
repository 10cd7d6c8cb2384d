// internal/domain/models/grant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission levels a grant can carry.
const (
	PermissionRead      = "read"
	PermissionReadWrite = "read-write"
)

// ValidPermission reports whether p is exactly "read" or "read-write".
func ValidPermission(p string) bool {
	return p == PermissionRead || p == PermissionReadWrite
}

// Resource types a grant or access check can target.
const (
	ResourceSpace   = "space"
	ResourceContent = "content"
)

// ValidResourceType reports whether t is "space" or "content".
func ValidResourceType(t string) bool {
	return t == ResourceSpace || t == ResourceContent
}

// Grant is a directed permission edge from a resource to a grantee user.
//
// At most one grant exists per (resource_type, resource_id, grantee_id);
// re-granting replaces the permission level rather than duplicating.
// Grants never imply ownership and space grants do not cascade to
// content-level grants (space grants are the "see everything in this
// space" mechanism; content grants cover exactly one item).
type Grant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResourceType string             `bson:"resource_type" json:"resource_type"` // space | content
	ResourceID   primitive.ObjectID `bson:"resource_id" json:"resource_id"`
	OwnerID      primitive.ObjectID `bson:"owner_id" json:"owner_id"` // resource owner at grant time
	GranteeID    primitive.ObjectID `bson:"grantee_id" json:"grantee_id"`
	Permission   string             `bson:"permission" json:"permission"` // read | read-write

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
