package shares_test

import (
	"net/http"
	"testing"

	"github.com/braincachehq/braincache/internal/app/features/shares"
	"github.com/braincachehq/braincache/internal/app/system/mailer"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*shares.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := shares.NewHandler(db, mailer.NewLog(zap.NewNop()), "BrainCache", "http://localhost:3000", zap.NewNop())
	return h, db
}

func sessionFor(u models.User) testutil.TestUser {
	return testutil.UserFor(u.ID, u.FullName, u.Email, u.Role, u.Plan)
}

func TestHandleGrant_OwnerGrantsAndRegrants(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	space := fx.CreateSpace(ctx, "Shared", owner.ID)

	body := map[string]string{
		"resource_type": "space",
		"resource_id":   space.ID.Hex(),
		"grantee_email": grantee.Email,
		"permission":    "read",
	}
	req := testutil.NewJSONRequest(t, "POST", "/shares/grants", body)
	req = testutil.WithUser(req, sessionFor(owner))
	rec := testutil.NewRecorder()
	h.HandleGrant(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	// Granting again with a different level replaces, never duplicates.
	body["permission"] = "read-write"
	req = testutil.NewJSONRequest(t, "POST", "/shares/grants", body)
	req = testutil.WithUser(req, sessionFor(owner))
	rec = testutil.NewRecorder()
	h.HandleGrant(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	count, err := db.Collection("grants").CountDocuments(ctx, bson.M{"grantee_id": grantee.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("grant count: got %d, want 1", count)
	}

	var g models.Grant
	if err := db.Collection("grants").FindOne(ctx, bson.M{"grantee_id": grantee.ID}).Decode(&g); err != nil {
		t.Fatalf("load grant failed: %v", err)
	}
	if g.Permission != models.PermissionReadWrite {
		t.Errorf("permission: got %q, want read-write", g.Permission)
	}
}

func TestHandleGrant_SelfGrantRejected(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	space := fx.CreateSpace(ctx, "Mine", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/shares/grants", map[string]string{
		"resource_type": "space",
		"resource_id":   space.ID.Hex(),
		"grantee_email": owner.Email,
		"permission":    "read",
	})
	req = testutil.WithUser(req, sessionFor(owner))
	rec := testutil.NewRecorder()
	h.HandleGrant(rec, req)
	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "you already own this resource")
}

func TestHandleGrant_NonOwnerDenied(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	interloper := fx.CreateFreeUser(ctx, "Interloper", "interloper@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	space := fx.CreateSpace(ctx, "Private", owner.ID)

	// Even a read-write grantee cannot re-share.
	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, interloper.ID, models.PermissionReadWrite)

	req := testutil.NewJSONRequest(t, "POST", "/shares/grants", map[string]string{
		"resource_type": "space",
		"resource_id":   space.ID.Hex(),
		"grantee_email": grantee.Email,
		"permission":    "read",
	})
	req = testutil.WithUser(req, sessionFor(interloper))
	rec := testutil.NewRecorder()
	h.HandleGrant(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleGrant_UnknownGrantee(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	space := fx.CreateSpace(ctx, "Mine", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/shares/grants", map[string]string{
		"resource_type": "space",
		"resource_id":   space.ID.Hex(),
		"grantee_email": "nobody@example.com",
		"permission":    "read",
	})
	req = testutil.WithUser(req, sessionFor(owner))
	rec := testutil.NewRecorder()
	h.HandleGrant(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "grantee user not found")
}

func TestHandleRevoke_Idempotent(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	space := fx.CreateSpace(ctx, "Shared", owner.ID)
	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, grantee.ID, models.PermissionRead)

	body := map[string]string{
		"resource_type": "space",
		"resource_id":   space.ID.Hex(),
		"grantee_id":    grantee.ID.Hex(),
	}
	for i := 0; i < 2; i++ {
		req := testutil.NewJSONRequest(t, "DELETE", "/shares/grants", body)
		req = testutil.WithUser(req, sessionFor(owner))
		rec := testutil.NewRecorder()
		h.HandleRevoke(rec, req)
		rec.AssertStatus(t, http.StatusOK)
	}

	count, err := db.Collection("grants").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("grants remain after revoke: %d", count)
	}
}

func TestHandleUpdatePermission_MissingGrant(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	space := fx.CreateSpace(ctx, "Mine", owner.ID)

	req := testutil.NewJSONRequest(t, "PATCH", "/shares/grants", map[string]string{
		"resource_type": "space",
		"resource_id":   space.ID.Hex(),
		"grantee_id":    grantee.ID.Hex(),
		"permission":    "read-write",
	})
	req = testutil.WithUser(req, sessionFor(owner))
	rec := testutil.NewRecorder()
	h.HandleUpdatePermission(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "no grant exists for this user")
}

func TestShareLinks_EnableDisableStatus(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	session := sessionFor(owner)

	enable := func() *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "POST", "/shares/links", map[string]string{"scope": "brain"})
		req = testutil.WithUser(req, session)
		rec := testutil.NewRecorder()
		h.HandleEnableLink(rec, req)
		return rec
	}

	rec := enable()
	rec.AssertStatus(t, http.StatusOK)
	var first struct {
		Token   string `json:"token"`
		URL     string `json:"url"`
		Created bool   `json:"created"`
	}
	rec.DecodeData(t, &first)
	if first.Token == "" {
		t.Fatal("no token in response")
	}
	if !first.Created {
		t.Error("first enable reported created=false")
	}
	if first.URL != "http://localhost:3000/brain/"+first.Token {
		t.Errorf("url: got %q", first.URL)
	}

	// Enabling again returns the same token.
	rec = enable()
	rec.AssertStatus(t, http.StatusOK)
	var again struct {
		Token   string `json:"token"`
		Created bool   `json:"created"`
	}
	rec.DecodeData(t, &again)
	if again.Token != first.Token {
		t.Errorf("second enable changed token: %q vs %q", again.Token, first.Token)
	}
	if again.Created {
		t.Error("second enable reported created=true")
	}

	// Disable removes the binding.
	req := testutil.NewJSONRequest(t, "DELETE", "/shares/links", map[string]string{"scope": "brain"})
	req = testutil.WithUser(req, session)
	rec = testutil.NewRecorder()
	h.HandleDisableLink(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	// Status reports no link.
	statusReq := testutil.NewAuthenticatedRequest("GET", "/shares/links?scope=brain", session)
	statusRec := testutil.NewRecorder()
	h.ServeLinkStatus(statusRec, statusReq)
	statusRec.AssertStatus(t, http.StatusOK)

	count, err := db.Collection("share_links").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("share links remain after disable: %d", count)
	}
}
