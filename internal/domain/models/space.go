// internal/domain/models/space.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Space is a named collection of content items owned by exactly one user.
// The owner is set at creation and never changes.
type Space struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped

	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
