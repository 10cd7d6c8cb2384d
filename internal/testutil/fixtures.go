package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, role, and plan.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role, plan string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      text.Fold(email),
		AuthMethod: "otp",
		Role:       role,
		Plan:       plan,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateFreeUser creates a test user on the free plan.
func (f *Fixtures) CreateFreeUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleUser, models.PlanFree)
}

// CreateProUser creates a test user on the pro plan.
func (f *Fixtures) CreateProUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleUser, models.PlanPro)
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin, models.PlanFree)
}

// CreateSpace creates a test space owned by the given user.
func (f *Fixtures) CreateSpace(ctx context.Context, name string, ownerID primitive.ObjectID) models.Space {
	f.t.Helper()

	now := time.Now().UTC()
	space := models.Space{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test space description",
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("spaces").InsertOne(ctx, space)
	if err != nil {
		f.t.Fatalf("failed to create test space: %v", err)
	}

	return space
}

// CreateContent creates a test link content item owned by the given user.
// Pass a nil spaceID for an unfiled item.
func (f *Fixtures) CreateContent(ctx context.Context, title string, ownerID primitive.ObjectID, spaceID *primitive.ObjectID) models.Content {
	f.t.Helper()

	now := time.Now().UTC()
	content := models.Content{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Type:      models.ContentLink,
		Link:      "https://example.com/article",
		OwnerID:   ownerID,
		SpaceID:   spaceID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("contents").InsertOne(ctx, content)
	if err != nil {
		f.t.Fatalf("failed to create test content: %v", err)
	}

	return content
}

// CreateNote creates a test note content item with the given body.
func (f *Fixtures) CreateNote(ctx context.Context, title, body string, ownerID primitive.ObjectID, spaceID *primitive.ObjectID) models.Content {
	f.t.Helper()

	now := time.Now().UTC()
	content := models.Content{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Type:      models.ContentNote,
		Body:      body,
		OwnerID:   ownerID,
		SpaceID:   spaceID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("contents").InsertOne(ctx, content)
	if err != nil {
		f.t.Fatalf("failed to create test note: %v", err)
	}

	return content
}

// CreateGrant creates a permission grant from a resource to a grantee.
func (f *Fixtures) CreateGrant(ctx context.Context, resourceType string, resourceID, ownerID, granteeID primitive.ObjectID, permission string) models.Grant {
	f.t.Helper()

	now := time.Now().UTC()
	grant := models.Grant{
		ID:           primitive.NewObjectID(),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OwnerID:      ownerID,
		GranteeID:    granteeID,
		Permission:   permission,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("grants").InsertOne(ctx, grant)
	if err != nil {
		f.t.Fatalf("failed to create test grant: %v", err)
	}

	return grant
}

// CreateComment creates a comment on a space.
func (f *Fixtures) CreateComment(ctx context.Context, spaceID, authorID primitive.ObjectID, authorName, body string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	comment := models.Comment{
		ID:         primitive.NewObjectID(),
		SpaceID:    spaceID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("comments").InsertOne(ctx, comment)
	if err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}

	return comment
}
