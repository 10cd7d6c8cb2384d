// internal/app/features/shares/grants.go
package shares

import (
	"context"
	"net/http"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	grantstore "github.com/braincachehq/braincache/internal/app/store/grants"
	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/mailer"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type grantRequest struct {
	ResourceType string `json:"resource_type"` // space | content
	ResourceID   string `json:"resource_id"`
	GranteeEmail string `json:"grantee_email,omitempty"`
	GranteeID    string `json:"grantee_id,omitempty"`
	Permission   string `json:"permission"` // read | read-write
}

// parseResource validates the resource reference in a grant request and
// confirms the caller owns it. Non-owners get the generic denied
// response whether or not the resource exists.
func (h *Handler) parseResource(ctx context.Context, w http.ResponseWriter, resourceType, rawID string, userID primitive.ObjectID) (primitive.ObjectID, bool) {
	if !models.ValidResourceType(resourceType) {
		httpapi.Validation(w, `resource_type must be "space" or "content"`)
		return primitive.NilObjectID, false
	}
	resourceID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		httpapi.Forbidden(w)
		return primitive.NilObjectID, false
	}
	isOwner, err := accesspolicy.IsOwner(ctx, h.DB, resourceType, resourceID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: resolve owner", err)
		return primitive.NilObjectID, false
	}
	if !isOwner {
		httpapi.Forbidden(w)
		return primitive.NilObjectID, false
	}
	return resourceID, true
}

// resolveGrantee finds the grantee by ID or email. A missing grantee is
// a NotFound: the caller typed a real address-book entry or they didn't.
func (h *Handler) resolveGrantee(ctx context.Context, req grantRequest) (*models.User, error) {
	if req.GranteeID != "" {
		id, err := primitive.ObjectIDFromHex(req.GranteeID)
		if err != nil {
			return nil, userstore.ErrNotFound
		}
		return h.Users.GetByID(ctx, id)
	}
	return h.Users.GetByEmail(ctx, req.GranteeEmail)
}

// HandleGrant handles POST /api/v1/shares/grants.
//
// Owner-only. Granting to the same grantee again replaces the permission
// level. Granting to yourself is rejected: ownership already dominates
// any grant, so such an edge would only ever be ignored.
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req grantRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	if !models.ValidPermission(req.Permission) {
		httpapi.Validation(w, `permission must be "read" or "read-write"`)
		return
	}
	if req.GranteeEmail == "" && req.GranteeID == "" {
		httpapi.Validation(w, "grantee_email or grantee_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resourceID, ok := h.parseResource(ctx, w, req.ResourceType, req.ResourceID, userID)
	if !ok {
		return
	}

	grantee, err := h.resolveGrantee(ctx, req)
	if err == userstore.ErrNotFound {
		httpapi.NotFound(w, "grantee user not found")
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: resolve grantee", err)
		return
	}
	if grantee.ID == userID {
		httpapi.Conflict(w, "you already own this resource")
		return
	}

	g, err := h.Grants.Upsert(ctx, req.ResourceType, resourceID, userID, grantee.ID, req.Permission)
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: upsert grant", err)
		return
	}

	h.notifyGrantee(ctx, g, grantee)

	h.Log.Info("grant upserted",
		zap.String("resource_type", g.ResourceType),
		zap.String("resource_id", g.ResourceID.Hex()),
		zap.String("grantee_id", g.GranteeID.Hex()),
		zap.String("permission", g.Permission))
	httpapi.Created(w, g)
}

// HandleUpdatePermission handles PATCH /api/v1/shares/grants.
//
// Unlike HandleGrant, this fails with NotFound when no grant exists yet.
func (h *Handler) HandleUpdatePermission(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req grantRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	if !models.ValidPermission(req.Permission) {
		httpapi.Validation(w, `permission must be "read" or "read-write"`)
		return
	}
	granteeID, err := primitive.ObjectIDFromHex(req.GranteeID)
	if err != nil {
		httpapi.Validation(w, "grantee_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resourceID, ok := h.parseResource(ctx, w, req.ResourceType, req.ResourceID, userID)
	if !ok {
		return
	}

	err = h.Grants.UpdatePermission(ctx, req.ResourceType, resourceID, granteeID, req.Permission)
	if err == grantstore.ErrNotFound {
		httpapi.NotFound(w, "no grant exists for this user")
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: update permission", err)
		return
	}
	httpapi.NoContent(w)
}

// HandleRevoke handles DELETE /api/v1/shares/grants. Owner-only and
// idempotent: revoking a grant that does not exist succeeds quietly.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req grantRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	granteeID, err := primitive.ObjectIDFromHex(req.GranteeID)
	if err != nil {
		httpapi.Validation(w, "grantee_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resourceID, ok := h.parseResource(ctx, w, req.ResourceType, req.ResourceID, userID)
	if !ok {
		return
	}

	if err := h.Grants.Revoke(ctx, req.ResourceType, resourceID, granteeID); err != nil {
		httpapi.ServerError(w, h.Log, "shares: revoke grant", err)
		return
	}
	httpapi.NoContent(w)
}

// granteeView is one row of the owner's sharing management list.
type granteeView struct {
	Grant        models.Grant `json:"grant"`
	GranteeName  string       `json:"grantee_name"`
	GranteeEmail string       `json:"grantee_email"`
}

// ServeGrantsForResource handles GET /api/v1/shares/grants?resource_type=&resource_id=.
// Owner-only.
func (h *Handler) ServeGrantsForResource(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resourceType := r.URL.Query().Get("resource_type")
	resourceID, ok := h.parseResource(ctx, w, resourceType, r.URL.Query().Get("resource_id"), userID)
	if !ok {
		return
	}

	rows, err := h.Grants.ListForResource(ctx, resourceType, resourceID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: list grants", err)
		return
	}

	out := make([]granteeView, 0, len(rows))
	for _, row := range rows {
		out = append(out, granteeView{
			Grant:        row.Grant,
			GranteeName:  row.GranteeName,
			GranteeEmail: row.GranteeEmail,
		})
	}
	httpapi.OK(w, out)
}

// notifyGrantee emails the grantee that something was shared with them.
// Best-effort: a mail failure never fails the grant.
func (h *Handler) notifyGrantee(ctx context.Context, g models.Grant, grantee *models.User) {
	ownerName := ""
	resourceName := ""
	if owner, err := h.Users.GetByID(ctx, g.OwnerID); err == nil {
		ownerName = owner.FullName
	}

	kind := "space"
	openLink := h.FrontendURL + "/spaces/" + g.ResourceID.Hex()
	if g.ResourceType == models.ResourceContent {
		kind = "content item"
		openLink = h.FrontendURL + "/contents/" + g.ResourceID.Hex()
	}
	if name, found := h.resourceDisplayName(ctx, g.ResourceType, g.ResourceID); found {
		resourceName = name
	}

	e := mailer.BuildGrantNoticeEmail(mailer.GrantNoticeData{
		SiteName:     h.SiteName,
		OwnerName:    ownerName,
		ResourceName: resourceName,
		ResourceKind: kind,
		Permission:   g.Permission,
		OpenLink:     openLink,
	})
	e.To = grantee.Email
	if err := h.Mail.Send(e); err != nil {
		h.Log.Warn("grant notification mail failed",
			zap.Error(err),
			zap.String("grantee_id", grantee.ID.Hex()))
	}
}
