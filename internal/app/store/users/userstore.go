// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/braincachehq/braincache/internal/app/system/normalize"
	"github.com/braincachehq/braincache/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")

	errBadRole = errors.New(`role must be "user" or "admin"`)
	errBadPlan = errors.New(`plan must be "free" or "pro"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Status = normalize.Status(u.Status)
	if u.Plan == "" {
		u.Plan = models.PlanFree
	}

	switch u.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.User{}, errBadRole
	}
	if u.Plan != models.PlanFree && u.Plan != models.PlanPro {
		return models.User{}, errBadPlan
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpsertByEmail finds a user by email or creates one. Used by OAuth login
// where the identity provider vouches for the address.
func (s *Store) UpsertByEmail(ctx context.Context, email, fullName, authMethod string) (*models.User, error) {
	existing, err := s.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	created, err := s.Create(ctx, models.User{
		FullName:   fullName,
		Email:      email,
		AuthMethod: authMethod,
		Role:       models.RoleUser,
		Plan:       models.PlanFree,
	})
	if err == ErrDuplicateEmail {
		// Lost a create race; the row exists now.
		return s.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProfile changes the user's display name.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName string) error {
	fullName = normalize.Name(fullName)
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"full_name":    fullName,
		"full_name_ci": text.Fold(fullName),
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPlan changes the user's subscription plan tag.
func (s *Store) SetPlan(ctx context.Context, id primitive.ObjectID, plan string) error {
	if plan != models.PlanFree && plan != models.PlanPro {
		return errBadPlan
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"plan":       plan,
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

// SearchByEmailPrefix returns up to limit active users whose email starts
// with the given prefix. Used to pick grantees when building a grant.
func (s *Store) SearchByEmailPrefix(ctx context.Context, prefix string, limit int64) ([]models.User, error) {
	prefix = normalize.Email(prefix)
	if prefix == "" {
		return nil, nil
	}
	hi := prefix + "\uffff"

	opts := options.Find().
		SetSort(bson.D{{Key: "email", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{
		"email":  bson.M{"$gte": prefix, "$lt": hi},
		"status": "active",
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureIndexes creates indexes for the users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email"),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_user_name_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
