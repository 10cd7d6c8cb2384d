package grantstore_test

import (
	"testing"

	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsert_CreatesGrant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	resourceID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	granteeID := primitive.NewObjectID()

	g, err := store.Upsert(ctx, models.ResourceSpace, resourceID, ownerID, granteeID, models.PermissionRead)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if g.Permission != models.PermissionRead {
		t.Errorf("permission: got %q, want %q", g.Permission, models.PermissionRead)
	}
	if g.GranteeID != granteeID {
		t.Errorf("grantee: got %s, want %s", g.GranteeID.Hex(), granteeID.Hex())
	}
	if g.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestUpsert_RegrantOverwritesWithoutDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	resourceID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	granteeID := primitive.NewObjectID()

	first, err := store.Upsert(ctx, models.ResourceSpace, resourceID, ownerID, granteeID, models.PermissionRead)
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	second, err := store.Upsert(ctx, models.ResourceSpace, resourceID, ownerID, granteeID, models.PermissionReadWrite)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-grant created a new document: %s vs %s", second.ID.Hex(), first.ID.Hex())
	}
	if second.Permission != models.PermissionReadWrite {
		t.Errorf("permission not overwritten: got %q", second.Permission)
	}

	count, err := db.Collection("grants").CountDocuments(ctx, bson.M{
		"resource_id": resourceID,
		"grantee_id":  granteeID,
	})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("document count: got %d, want 1", count)
	}
}

func TestUpsert_SameGranteeOnDifferentResources(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	ownerID := primitive.NewObjectID()
	granteeID := primitive.NewObjectID()
	spaceID := primitive.NewObjectID()
	contentID := primitive.NewObjectID()

	if _, err := store.Upsert(ctx, models.ResourceSpace, spaceID, ownerID, granteeID, models.PermissionRead); err != nil {
		t.Fatalf("space Upsert failed: %v", err)
	}
	if _, err := store.Upsert(ctx, models.ResourceContent, contentID, ownerID, granteeID, models.PermissionReadWrite); err != nil {
		t.Fatalf("content Upsert failed: %v", err)
	}

	spaceGrant, err := store.Get(ctx, models.ResourceSpace, spaceID, granteeID)
	if err != nil {
		t.Fatalf("Get space grant failed: %v", err)
	}
	if spaceGrant.Permission != models.PermissionRead {
		t.Errorf("space grant permission: got %q", spaceGrant.Permission)
	}

	contentGrant, err := store.Get(ctx, models.ResourceContent, contentID, granteeID)
	if err != nil {
		t.Fatalf("Get content grant failed: %v", err)
	}
	if contentGrant.Permission != models.PermissionReadWrite {
		t.Errorf("content grant permission: got %q", contentGrant.Permission)
	}
}

func TestUpsert_RejectsBadEnums(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	id := primitive.NewObjectID()
	if _, err := store.Upsert(ctx, "folder", id, id, id, models.PermissionRead); err == nil {
		t.Error("expected error for bad resource type")
	}
	if _, err := store.Upsert(ctx, models.ResourceSpace, id, id, id, "admin"); err == nil {
		t.Error("expected error for bad permission")
	}
}

func TestUpdatePermission_MissingGrant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	err := store.UpdatePermission(ctx, models.ResourceSpace, primitive.NewObjectID(), primitive.NewObjectID(), models.PermissionRead)
	if err != grantstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	resourceID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	granteeID := primitive.NewObjectID()

	if _, err := store.Upsert(ctx, models.ResourceSpace, resourceID, ownerID, granteeID, models.PermissionRead); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := store.Revoke(ctx, models.ResourceSpace, resourceID, granteeID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := store.Get(ctx, models.ResourceSpace, resourceID, granteeID); err != grantstore.ErrNotFound {
		t.Errorf("grant still resolves after revoke: %v", err)
	}

	// Revoking again is not an error.
	if err := store.Revoke(ctx, models.ResourceSpace, resourceID, granteeID); err != nil {
		t.Errorf("second Revoke failed: %v", err)
	}
}

func TestListForGrantee_FiltersByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")

	if _, err := store.Upsert(ctx, models.ResourceSpace, primitive.NewObjectID(), owner.ID, grantee.ID, models.PermissionRead); err != nil {
		t.Fatalf("space Upsert failed: %v", err)
	}
	if _, err := store.Upsert(ctx, models.ResourceContent, primitive.NewObjectID(), owner.ID, grantee.ID, models.PermissionRead); err != nil {
		t.Fatalf("content Upsert failed: %v", err)
	}

	shared, err := store.ListForGrantee(ctx, models.ResourceSpace, grantee.ID)
	if err != nil {
		t.Fatalf("ListForGrantee failed: %v", err)
	}
	if len(shared) != 1 {
		t.Fatalf("shared spaces: got %d, want 1", len(shared))
	}
	if shared[0].OwnerName != "Owner" {
		t.Errorf("owner name: got %q", shared[0].OwnerName)
	}
}

func TestDeleteByResource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := grantstore.New(db)

	resourceID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		if _, err := store.Upsert(ctx, models.ResourceSpace, resourceID, ownerID, primitive.NewObjectID(), models.PermissionRead); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	deleted, err := store.DeleteByResource(ctx, models.ResourceSpace, resourceID)
	if err != nil {
		t.Fatalf("DeleteByResource failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted count: got %d, want 3", deleted)
	}
}
