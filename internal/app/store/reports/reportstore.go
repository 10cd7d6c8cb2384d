// internal/app/store/reports/reportstore.go
package reportstore

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
	// ErrNotFound is returned when a report does not exist.
	ErrNotFound = errors.New("report not found")

	errBadStatus = errors.New(`status must be "pending", "resolved", or "ignored"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reports")}
}

// Create inserts a new report against a content item. OwnerID is the
// content owner, denormalized for visibility queries.
func (s *Store) Create(ctx context.Context, rp models.Report) (models.Report, error) {
	now := time.Now().UTC()
	rp.ID = primitive.NewObjectID()
	rp.Status = models.ReportPending
	rp.CreatedAt = now
	rp.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, rp); err != nil {
		return models.Report{}, err
	}
	return rp, nil
}

// GetByID retrieves a report by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Report, error) {
	var rp models.Report
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Report{}, ErrNotFound
		}
		return models.Report{}, err
	}
	return rp, nil
}

// SetStatus transitions a report's status. Authorization (content owner
// or admin) is enforced by the caller.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.ValidReportStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
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

// ListByOwner returns reports against the given owner's content, newest
// first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Report, error) {
	return s.list(ctx, bson.M{"owner_id": ownerID})
}

// ListAll returns every report, newest first. Admin-only at the handler
// layer.
func (s *Store) ListAll(ctx context.Context) ([]models.Report, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []models.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// EnsureIndexes creates indexes for the reports collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_report_owner_created"),
		},
		{
			Keys:    bson.D{{Key: "content_id", Value: 1}},
			Options: options.Index().SetName("idx_report_content"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
