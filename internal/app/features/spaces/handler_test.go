package spaces_test

import (
	"net/http"
	"testing"

	"github.com/braincachehq/braincache/internal/app/features/spaces"
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/braincachehq/braincache/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*spaces.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := spaces.NewHandler(db, limits.SpaceLimits{Free: 2, Pro: 500}, zap.NewNop())
	return h, db
}

func TestHandleCreate_RequiresSession(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/spaces", map[string]string{"name": "Recipes"})
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleCreate_Success(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	session := testutil.UserFor(owner.ID, owner.FullName, owner.Email, owner.Role, owner.Plan)

	req := testutil.NewJSONRequest(t, "POST", "/spaces", map[string]string{
		"name":        "Recipes",
		"description": "things to cook",
	})
	req = testutil.WithUser(req, session)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var created models.Space
	rec.DecodeData(t, &created)
	if created.Name != "Recipes" {
		t.Errorf("name: got %q", created.Name)
	}
	if created.OwnerID != owner.ID {
		t.Errorf("owner: got %s", created.OwnerID.Hex())
	}
}

func TestHandleCreate_FreePlanCap(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	fx.CreateSpace(ctx, "One", owner.ID)
	fx.CreateSpace(ctx, "Two", owner.ID)

	session := testutil.UserFor(owner.ID, owner.FullName, owner.Email, owner.Role, owner.Plan)
	req := testutil.NewJSONRequest(t, "POST", "/spaces", map[string]string{"name": "Three"})
	req = testutil.WithUser(req, session)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "space limit reached")
}

func TestHandleCreate_ProPlanNotCapped(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateProUser(ctx, "Pro Owner", "pro@example.com")
	fx.CreateSpace(ctx, "One", owner.ID)
	fx.CreateSpace(ctx, "Two", owner.ID)

	session := testutil.UserFor(owner.ID, owner.FullName, owner.Email, owner.Role, owner.Plan)
	req := testutil.NewJSONRequest(t, "POST", "/spaces", map[string]string{"name": "Three"})
	req = testutil.WithUser(req, session)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestServeGet_OwnerGranteeAndStranger(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	grantee := fx.CreateFreeUser(ctx, "Grantee", "grantee@example.com")
	stranger := fx.CreateFreeUser(ctx, "Stranger", "stranger@example.com")
	space := fx.CreateSpace(ctx, "Shared", owner.ID)
	fx.CreateContent(ctx, "Filed Item", owner.ID, &space.ID)
	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, grantee.ID, models.PermissionRead)

	serve := func(u models.User) *testutil.ResponseRecorder {
		session := testutil.UserFor(u.ID, u.FullName, u.Email, u.Role, u.Plan)
		req := testutil.NewAuthenticatedRequest("GET", "/spaces/"+space.ID.Hex(), session)
		req = testutil.WithChiURLParam(req, "id", space.ID.Hex())
		rec := testutil.NewRecorder()
		h.ServeGet(rec, req)
		return rec
	}

	ownerRec := serve(owner)
	ownerRec.AssertStatus(t, http.StatusOK)
	ownerRec.AssertContains(t, `"permission":"owner"`)
	ownerRec.AssertContains(t, "Filed Item")

	granteeRec := serve(grantee)
	granteeRec.AssertStatus(t, http.StatusOK)
	granteeRec.AssertContains(t, `"permission":"read"`)

	strangerRec := serve(stranger)
	strangerRec.AssertStatus(t, http.StatusForbidden)
}

func TestServeGet_MissingSpaceSameDenied(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	user := fx.CreateFreeUser(ctx, "User", "user@example.com")
	session := testutil.UserFor(user.ID, user.FullName, user.Email, user.Role, user.Plan)

	missing := "64b000000000000000000000"
	req := testutil.NewAuthenticatedRequest("GET", "/spaces/"+missing, session)
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := testutil.NewRecorder()
	h.ServeGet(rec, req)

	// A space that does not exist looks identical to one the caller
	// cannot see.
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleDelete_CascadesAndOwnerOnly(t *testing.T) {
	h, db := newTestHandler(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreateFreeUser(ctx, "Owner", "owner@example.com")
	editor := fx.CreateFreeUser(ctx, "Editor", "editor@example.com")
	space := fx.CreateSpace(ctx, "Doomed", owner.ID)
	item := fx.CreateContent(ctx, "Filed", owner.ID, &space.ID)
	fx.CreateGrant(ctx, models.ResourceSpace, space.ID, owner.ID, editor.ID, models.PermissionReadWrite)
	fx.CreateGrant(ctx, models.ResourceContent, item.ID, owner.ID, editor.ID, models.PermissionRead)
	fx.CreateComment(ctx, space.ID, editor.ID, editor.FullName, "nice")

	// A read-write grantee still cannot delete.
	editorSession := testutil.UserFor(editor.ID, editor.FullName, editor.Email, editor.Role, editor.Plan)
	req := testutil.NewAuthenticatedRequest("DELETE", "/spaces/"+space.ID.Hex(), editorSession)
	req = testutil.WithChiURLParam(req, "id", space.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	ownerSession := testutil.UserFor(owner.ID, owner.FullName, owner.Email, owner.Role, owner.Plan)
	req = testutil.NewAuthenticatedRequest("DELETE", "/spaces/"+space.ID.Hex(), ownerSession)
	req = testutil.WithChiURLParam(req, "id", space.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	for _, coll := range []string{"spaces", "contents", "grants", "comments"} {
		count, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s failed: %v", coll, err)
		}
		if count != 0 {
			t.Errorf("%s not fully cleaned up: %d rows remain", coll, count)
		}
	}
}

func TestRoutes(t *testing.T) {
	h, _ := newTestHandler(t)
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	if spaces.Routes(h, sessionMgr) == nil {
		t.Fatal("Routes() returned nil")
	}
}
