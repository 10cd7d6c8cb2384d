// internal/domain/models/sharelink.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Share link scopes.
const (
	// ScopeBrain shares every content item the owner has saved.
	ScopeBrain = "brain"
	// ScopeContent shares exactly one content item.
	ScopeContent = "content"
)

// ValidShareScope reports whether s is "brain" or "content".
func ValidShareScope(s string) bool {
	return s == ScopeBrain || s == ScopeContent
}

// ShareLink binds an opaque public token to a resource scope and its owner.
//
// Anyone holding the token gets anonymous read-only access. A brain-scope
// link and a content-scope link for an item inside that brain may coexist;
// neither is aware of the other. Disabling deletes the binding outright, so
// the token permanently stops resolving; re-enabling mints a fresh token.
type ShareLink struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Token     string              `bson:"token" json:"token"`
	OwnerID   primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	Scope     string              `bson:"scope" json:"scope"`                               // brain | content
	ContentID *primitive.ObjectID `bson:"content_id,omitempty" json:"content_id,omitempty"` // set when scope is content

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
