package accesspolicy_test

import (
	"testing"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level accesspolicy.Level
		want  string
	}{
		{accesspolicy.LevelNone, "none"},
		{accesspolicy.LevelRead, "read"},
		{accesspolicy.LevelReadWrite, "read-write"},
		{accesspolicy.LevelOwner, "owner"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String(): got %q, want %q", c.level, got, c.want)
		}
	}
}

func TestLevelCapabilities(t *testing.T) {
	if accesspolicy.LevelNone.CanRead() {
		t.Error("none can read")
	}
	if accesspolicy.LevelRead.CanWrite() {
		t.Error("read can write")
	}
	if !accesspolicy.LevelRead.CanRead() {
		t.Error("read cannot read")
	}
	if !accesspolicy.LevelReadWrite.CanWrite() {
		t.Error("read-write cannot write")
	}
	if !accesspolicy.LevelOwner.CanRead() || !accesspolicy.LevelOwner.CanWrite() {
		t.Error("owner lacks full access")
	}
}

func TestEffective_OwnerAlwaysWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	space := fx.CreateSpace(ctx, "My Space", owner.ID)

	level, err := accesspolicy.Effective(ctx, db, models.ResourceSpace, space.ID, owner.ID)
	if err != nil {
		t.Fatalf("Effective failed: %v", err)
	}
	if level != accesspolicy.LevelOwner {
		t.Errorf("owner level: got %v, want owner", level)
	}
}

func TestEffective_SelfGrantDoesNotReduceOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	space := fx.CreateSpace(ctx, "My Space", owner.ID)

	// A read grant pointing at the owner themselves must be ignored.
	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, owner.ID, models.PermissionRead)

	level, err := accesspolicy.Effective(ctx, db, models.ResourceSpace, space.ID, owner.ID)
	if err != nil {
		t.Fatalf("Effective failed: %v", err)
	}
	if level != accesspolicy.LevelOwner {
		t.Errorf("owner with self-grant: got %v, want owner", level)
	}
}

func TestEffective_GrantLevels(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	reader := fx.CreateFreeUser(ctx, "Reader", "reader@example.com")
	editor := fx.CreateFreeUser(ctx, "Editor", "editor@example.com")
	stranger := fx.CreateFreeUser(ctx, "Stranger", "stranger@example.com")
	space := fx.CreateSpace(ctx, "Shared Space", owner.ID)

	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, reader.ID, models.PermissionRead)
	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, editor.ID, models.PermissionReadWrite)

	cases := []struct {
		name   string
		userID primitive.ObjectID
		want   accesspolicy.Level
	}{
		{"reader", reader.ID, accesspolicy.LevelRead},
		{"editor", editor.ID, accesspolicy.LevelReadWrite},
		{"stranger", stranger.ID, accesspolicy.LevelNone},
	}
	for _, c := range cases {
		level, err := accesspolicy.Effective(ctx, db, models.ResourceSpace, space.ID, c.userID)
		if err != nil {
			t.Fatalf("Effective(%s) failed: %v", c.name, err)
		}
		if level != c.want {
			t.Errorf("%s: got %v, want %v", c.name, level, c.want)
		}
	}
}

func TestEffective_MissingResourceIsNone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	level, err := accesspolicy.Effective(ctx, db, models.ResourceSpace, primitive.NewObjectID(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Effective failed: %v", err)
	}
	if level != accesspolicy.LevelNone {
		t.Errorf("missing resource: got %v, want none", level)
	}
}

func TestEffective_SpaceGrantDoesNotCascadeToContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	space := fx.CreateSpace(ctx, "Shared Space", owner.ID)
	item := fx.CreateContent(ctx, "Filed Item", owner.ID, &space.ID)

	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, grantee.ID, models.PermissionReadWrite)

	// The space grant covers the space view, not direct content access.
	spaceLevel, err := accesspolicy.Effective(ctx, db, models.ResourceSpace, space.ID, grantee.ID)
	if err != nil {
		t.Fatalf("Effective(space) failed: %v", err)
	}
	if spaceLevel != accesspolicy.LevelReadWrite {
		t.Errorf("space level: got %v, want read-write", spaceLevel)
	}

	contentLevel, err := accesspolicy.Effective(ctx, db, models.ResourceContent, item.ID, grantee.ID)
	if err != nil {
		t.Fatalf("Effective(content) failed: %v", err)
	}
	if contentLevel != accesspolicy.LevelNone {
		t.Errorf("content level: got %v, want none", contentLevel)
	}
}

func TestEffective_RevokeRemovesAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	grants := grantstore.New(db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	space := fx.CreateSpace(ctx, "Shared Space", owner.ID)

	if _, err := grants.Upsert(ctx, models.ResourceSpace, space.ID, owner.ID, grantee.ID, models.PermissionRead); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := grants.Revoke(ctx, models.ResourceSpace, space.ID, grantee.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	level, err := accesspolicy.Effective(ctx, db, models.ResourceSpace, space.ID, grantee.ID)
	if err != nil {
		t.Fatalf("Effective failed: %v", err)
	}
	if level != accesspolicy.LevelNone {
		t.Errorf("level after revoke: got %v, want none", level)
	}
}

func TestIsOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	other := fx.CreateFreeUser(ctx, "Other", "other@example.com")
	item := fx.CreateContent(ctx, "My Item", owner.ID, nil)

	ok, err := accesspolicy.IsOwner(ctx, db, models.ResourceContent, item.ID, owner.ID)
	if err != nil {
		t.Fatalf("IsOwner failed: %v", err)
	}
	if !ok {
		t.Error("owner not recognized")
	}

	ok, err = accesspolicy.IsOwner(ctx, db, models.ResourceContent, item.ID, other.ID)
	if err != nil {
		t.Fatalf("IsOwner failed: %v", err)
	}
	if ok {
		t.Error("non-owner recognized as owner")
	}

	ok, err = accesspolicy.IsOwner(ctx, db, models.ResourceContent, primitive.NewObjectID(), owner.ID)
	if err != nil {
		t.Fatalf("IsOwner failed: %v", err)
	}
	if ok {
		t.Error("missing resource reported as owned")
	}
}
