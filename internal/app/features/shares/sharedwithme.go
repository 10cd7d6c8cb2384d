// internal/app/features/shares/sharedwithme.go
package shares

import (
	"context"
	"net/http"

	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sharedView is one row of the grantee's "shared with me" listing: the
// grant, the resource's display name, and the owner's identity.
type sharedView struct {
	Grant        models.Grant `json:"grant"`
	ResourceName string       `json:"resource_name"`
	OwnerName    string       `json:"owner_name"`
	OwnerEmail   string       `json:"owner_email"`
}

// ServeSharedWithMe handles GET /api/v1/shares/shared-with-me?resource_type=.
//
// Returns every resource of the given type where the caller holds an
// active grant, with the resolved permission and owner info.
func (h *Handler) ServeSharedWithMe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	resourceType := r.URL.Query().Get("resource_type")
	if resourceType == "" {
		resourceType = models.ResourceSpace
	}
	if !models.ValidResourceType(resourceType) {
		httpapi.Validation(w, `resource_type must be "space" or "content"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Grants.ListForGrantee(ctx, resourceType, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "shares: list shared with me", err)
		return
	}

	out := make([]sharedView, 0, len(rows))
	for _, row := range rows {
		name, found := h.resourceDisplayName(ctx, row.Grant.ResourceType, row.Grant.ResourceID)
		if !found {
			// Resource deleted out from under the grant; skip the orphan.
			continue
		}
		out = append(out, sharedView{
			Grant:        row.Grant,
			ResourceName: name,
			OwnerName:    row.OwnerName,
			OwnerEmail:   row.OwnerEmail,
		})
	}
	httpapi.OK(w, out)
}

// resourceDisplayName loads the human name of a space or the title of a
// content item. Best-effort; found=false when the resource is gone.
func (h *Handler) resourceDisplayName(ctx context.Context, resourceType string, resourceID primitive.ObjectID) (string, bool) {
	coll := "spaces"
	field := "name"
	if resourceType == models.ResourceContent {
		coll = "contents"
		field = "title"
	}

	var doc bson.M
	if err := h.DB.Collection(coll).FindOne(ctx, bson.M{"_id": resourceID}).Decode(&doc); err != nil {
		return "", false
	}
	name, _ := doc[field].(string)
	return name, true
}
