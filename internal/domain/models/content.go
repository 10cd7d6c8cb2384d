// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content item types.
const (
	ContentLink    = "link"
	ContentDoc     = "document"
	ContentYouTube = "youtube"
	ContentTwitter = "twitter"
	ContentArticle = "article"
	ContentNote    = "note"
)

// ValidContentType reports whether t is one of the fixed content type tags.
func ValidContentType(t string) bool {
	switch t {
	case ContentLink, ContentDoc, ContentYouTube, ContentTwitter, ContentArticle, ContentNote:
		return true
	}
	return false
}

// Content is a single saved artifact: a link, uploaded document, embed, or
// note. The owner is immutable. SpaceID, when set, must reference a space
// owned by the same user; unfiled items leave it nil.
type Content struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped

	Type string `bson:"type" json:"type"` // link | document | youtube | twitter | article | note
	Link string `bson:"link,omitempty" json:"link,omitempty"` // target URL or uploaded-file URL
	Body string `bson:"body,omitempty" json:"body,omitempty"` // note body (sanitized HTML)

	OwnerID primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	SpaceID *primitive.ObjectID `bson:"space_id,omitempty" json:"space_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
