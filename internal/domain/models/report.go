// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses.
const (
	ReportPending  = "pending"
	ReportResolved = "resolved"
	ReportIgnored  = "ignored"
)

// ValidReportStatus reports whether s is a known report status.
func ValidReportStatus(s string) bool {
	return s == ReportPending || s == ReportResolved || s == ReportIgnored
}

// Report is a flag raised against a content item.
//
// OwnerID is the content owner, denormalized so visibility queries
// (owner + admins) don't need a join. Status transitions are restricted
// to the content owner and admins.
type Report struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentID primitive.ObjectID `bson:"content_id" json:"content_id"`
	OwnerID   primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	ReporterID primitive.ObjectID `bson:"reporter_id" json:"reporter_id"`
	Reason     string             `bson:"reason" json:"reason"`
	Status     string             `bson:"status" json:"status"` // pending | resolved | ignored

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
