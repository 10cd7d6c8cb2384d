package spacestore_test

import (
	"testing"

	spacestore "github.com/braincachehq/braincache/internal/app/store/spaces"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *spacestore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := spacestore.New(db)
	if err := store.EnsureIndexes(testutil.TestContext(t)); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return store
}

func TestCreate_DuplicateNamePerOwner(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Space{Name: "Recipes", OwnerID: ownerID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Same owner, same folded name -> duplicate.
	if _, err := store.Create(ctx, models.Space{Name: "recipes", OwnerID: ownerID}); err != spacestore.ErrDuplicateName {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}

	// A different owner can reuse the name.
	if _, err := store.Create(ctx, models.Space{Name: "Recipes", OwnerID: otherID}); err != nil {
		t.Errorf("different owner blocked: %v", err)
	}
}

func TestUpdate_RenameAndMissing(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	ownerID := primitive.NewObjectID()
	sp, err := store.Create(ctx, models.Space{Name: "Old Name", OwnerID: ownerID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, sp.ID, "New Name", "updated description"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, sp.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Description != "updated description" {
		t.Errorf("description: got %q", got.Description)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), "X", ""); err != spacestore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListByOwner_SortedByName(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	ownerID := primitive.NewObjectID()
	for _, name := range []string{"Zines", "Articles", "Music"} {
		if _, err := store.Create(ctx, models.Space{Name: name, OwnerID: ownerID}); err != nil {
			t.Fatalf("Create(%s) failed: %v", name, err)
		}
	}
	// Another owner's space must not leak in.
	if _, err := store.Create(ctx, models.Space{Name: "Other", OwnerID: primitive.NewObjectID()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	spaces, err := store.ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(spaces) != 3 {
		t.Fatalf("got %d spaces, want 3", len(spaces))
	}
	want := []string{"Articles", "Music", "Zines"}
	for i, sp := range spaces {
		if sp.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, sp.Name, want[i])
		}
	}
}

func TestCountByOwner(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	ownerID := primitive.NewObjectID()
	count, err := store.CountByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountByOwner failed: %v", err)
	}
	if count != 0 {
		t.Errorf("empty count: got %d", count)
	}

	if _, err := store.Create(ctx, models.Space{Name: "One", OwnerID: ownerID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Space{Name: "Two", OwnerID: ownerID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err = store.CountByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("CountByOwner failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count: got %d, want 2", count)
	}
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	ctx := testutil.TestContext(t)

	sp, err := store.Create(ctx, models.Space{Name: "Doomed", OwnerID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, sp.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}
	if _, err := store.GetByID(ctx, sp.ID); err != spacestore.ErrNotFound {
		t.Errorf("space still resolves after delete: %v", err)
	}
}
