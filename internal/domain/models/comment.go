// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is feedback attached to a space by a user with at least read
// access. Only the author may edit; the author or the space owner may
// delete.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SpaceID primitive.ObjectID `bson:"space_id" json:"space_id"`

	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`

	Body   string `bson:"body" json:"body"` // sanitized HTML
	Edited bool   `bson:"edited" json:"edited"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
