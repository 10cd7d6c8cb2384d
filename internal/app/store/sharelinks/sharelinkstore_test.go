package sharelinkstore_test

import (
	"testing"

	sharelinkstore "github.com/braincachehq/braincache/internal/app/store/sharelinks"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnable_MintsToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	ownerID := primitive.NewObjectID()

	link, created, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !created {
		t.Error("expected created=true on first enable")
	}
	if link.Token == "" {
		t.Fatal("no token minted")
	}

	resolved, err := store.Resolve(ctx, link.Token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.OwnerID != ownerID {
		t.Errorf("owner: got %s, want %s", resolved.OwnerID.Hex(), ownerID.Hex())
	}
	if resolved.Scope != models.ScopeBrain {
		t.Errorf("scope: got %q", resolved.Scope)
	}
}

func TestEnable_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	ownerID := primitive.NewObjectID()

	first, _, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("first Enable failed: %v", err)
	}
	second, created, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("second Enable failed: %v", err)
	}
	if created {
		t.Error("second enable reported created=true")
	}
	if second.Token != first.Token {
		t.Errorf("second enable changed token: %q vs %q", second.Token, first.Token)
	}
}

func TestDisable_TokenNeverResolvesAgain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	ownerID := primitive.NewObjectID()

	link, _, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if err := store.Disable(ctx, ownerID, models.ScopeBrain, nil); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}

	if _, err := store.Resolve(ctx, link.Token); err != sharelinkstore.ErrNotFound {
		t.Errorf("old token resolved after disable: %v", err)
	}

	// Re-enable mints a fresh token; the old one stays dead.
	fresh, created, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("re-Enable failed: %v", err)
	}
	if !created {
		t.Error("expected created=true after disable")
	}
	if fresh.Token == link.Token {
		t.Error("re-enable reused the disabled token")
	}
	if _, err := store.Resolve(ctx, link.Token); err != sharelinkstore.ErrNotFound {
		t.Errorf("disabled token resolved after re-enable: %v", err)
	}
	if _, err := store.Resolve(ctx, fresh.Token); err != nil {
		t.Errorf("fresh token failed to resolve: %v", err)
	}
}

func TestDisable_UnsharedScopeIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	if err := store.Disable(ctx, primitive.NewObjectID(), models.ScopeBrain, nil); err != nil {
		t.Errorf("Disable on unshared scope failed: %v", err)
	}
}

func TestEnable_ContentScopeRequiresContentID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	if _, _, err := store.Enable(ctx, primitive.NewObjectID(), models.ScopeContent, nil); err == nil {
		t.Error("expected error for content scope without content id")
	}
	if _, _, err := store.Enable(ctx, primitive.NewObjectID(), "workspace", nil); err == nil {
		t.Error("expected error for unknown scope")
	}
}

func TestBrainAndContentLinksCoexist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	ownerID := primitive.NewObjectID()
	contentID := primitive.NewObjectID()

	brainLink, _, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("brain Enable failed: %v", err)
	}
	itemLink, _, err := store.Enable(ctx, ownerID, models.ScopeContent, &contentID)
	if err != nil {
		t.Fatalf("content Enable failed: %v", err)
	}
	if brainLink.Token == itemLink.Token {
		t.Fatal("brain and content links share a token")
	}

	// Disabling the item link leaves the brain link untouched.
	if err := store.Disable(ctx, ownerID, models.ScopeContent, &contentID); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if _, err := store.Resolve(ctx, itemLink.Token); err != sharelinkstore.ErrNotFound {
		t.Errorf("content token resolved after disable: %v", err)
	}
	if _, err := store.Resolve(ctx, brainLink.Token); err != nil {
		t.Errorf("brain token stopped resolving: %v", err)
	}
}

func TestGetForScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	ownerID := primitive.NewObjectID()

	if _, err := store.GetForScope(ctx, ownerID, models.ScopeBrain, nil); err != sharelinkstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound for unshared scope", err)
	}

	link, _, err := store.Enable(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	got, err := store.GetForScope(ctx, ownerID, models.ScopeBrain, nil)
	if err != nil {
		t.Fatalf("GetForScope failed: %v", err)
	}
	if got.Token != link.Token {
		t.Errorf("token mismatch: %q vs %q", got.Token, link.Token)
	}
}

func TestDeleteByContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := sharelinkstore.New(db)

	ownerID := primitive.NewObjectID()
	contentID := primitive.NewObjectID()

	link, _, err := store.Enable(ctx, ownerID, models.ScopeContent, &contentID)
	if err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if err := store.DeleteByContent(ctx, contentID); err != nil {
		t.Fatalf("DeleteByContent failed: %v", err)
	}
	if _, err := store.Resolve(ctx, link.Token); err != sharelinkstore.ErrNotFound {
		t.Errorf("token resolved after content deletion: %v", err)
	}
}
