package contentstore_test

import (
	"testing"
	"time"

	contentstore "github.com/braincachehq/braincache/internal/app/store/contents"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_ValidatesType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := contentstore.New(db)

	if _, err := store.Create(ctx, models.Content{
		Title:   "Bad",
		Type:    "podcast",
		OwnerID: primitive.NewObjectID(),
	}); err == nil {
		t.Error("expected error for unknown content type")
	}

	c, err := store.Create(ctx, models.Content{
		Title:   "Good Link",
		Type:    models.ContentLink,
		Link:    "https://example.com",
		OwnerID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestUpdate_MoveBetweenSpaceAndUnfiled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := contentstore.New(db)

	ownerID := primitive.NewObjectID()
	spaceID := primitive.NewObjectID()

	c, err := store.Create(ctx, models.Content{
		Title:   "Movable",
		Type:    models.ContentLink,
		Link:    "https://example.com",
		OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// File into a space.
	if err := store.Update(ctx, c.ID, c.Title, c.Link, "", &spaceID); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.SpaceID == nil || *got.SpaceID != spaceID {
		t.Error("space_id not set")
	}

	// Back to unfiled.
	if err := store.Update(ctx, c.ID, c.Title, c.Link, "", nil); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err = store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.SpaceID != nil {
		t.Error("space_id still set after unfiling")
	}
}

func TestListByOwner_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := contentstore.New(db)

	ownerID := primitive.NewObjectID()
	for _, title := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, models.Content{
			Title:   title,
			Type:    models.ContentNote,
			Body:    "<p>body</p>",
			OwnerID: ownerID,
		}); err != nil {
			t.Fatalf("Create(%s) failed: %v", title, err)
		}
		// BSON stores timestamps at millisecond precision; keep the
		// created_at values distinct so the sort order is deterministic.
		time.Sleep(2 * time.Millisecond)
	}

	items, err := store.ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Title != "third" {
		t.Errorf("newest first: got %q", items[0].Title)
	}
}

func TestListBySpace_FiltersByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := contentstore.New(db)

	ownerID := primitive.NewObjectID()
	intruderID := primitive.NewObjectID()
	spaceID := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Content{
		Title: "Mine", Type: models.ContentLink, Link: "https://a.example", OwnerID: ownerID, SpaceID: &spaceID,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Content{
		Title: "Not Mine", Type: models.ContentLink, Link: "https://b.example", OwnerID: intruderID, SpaceID: &spaceID,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	items, err := store.ListBySpace(ctx, spaceID, ownerID)
	if err != nil {
		t.Fatalf("ListBySpace failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Mine" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestDeleteBySpace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := contentstore.New(db)

	ownerID := primitive.NewObjectID()
	spaceID := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx, models.Content{
			Title: "Filed", Type: models.ContentLink, Link: "https://x.example", OwnerID: ownerID, SpaceID: &spaceID,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	unfiled, err := store.Create(ctx, models.Content{
		Title: "Unfiled", Type: models.ContentLink, Link: "https://y.example", OwnerID: ownerID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.DeleteBySpace(ctx, spaceID)
	if err != nil {
		t.Fatalf("DeleteBySpace failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted: got %d, want 2", deleted)
	}
	if _, err := store.GetByID(ctx, unfiled.ID); err != nil {
		t.Errorf("unfiled item was deleted: %v", err)
	}
}
