// internal/app/features/reports/reports.go
package reports

import (
	"context"
	"net/http"
	"strings"

	"github.com/braincachehq/braincache/internal/app/policy/accesspolicy"
	reportstore "github.com/braincachehq/braincache/internal/app/store/reports"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createReportRequest struct {
	ContentID string `json:"content_id"`
	Reason    string `json:"reason"`
}

// HandleCreate handles POST /api/v1/reports. A signed-in user may flag a
// content item they can read; anyone else, and any unknown ID, gets the
// same denial.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	var req createReportRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	contentID, err := primitive.ObjectIDFromHex(req.ContentID)
	if err != nil {
		httpapi.Validation(w, "content_id is required")
		return
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		httpapi.Validation(w, "reason is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	level, err := accesspolicy.Effective(ctx, h.DB, models.ResourceContent, contentID, userID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "reports: resolve access", err)
		return
	}
	if !level.CanRead() {
		httpapi.Forbidden(w)
		return
	}

	c, err := h.Contents.GetByID(ctx, contentID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "reports: load content", err)
		return
	}

	rp, err := h.Reports.Create(ctx, models.Report{
		ContentID:  contentID,
		OwnerID:    c.OwnerID,
		ReporterID: userID,
		Reason:     req.Reason,
	})
	if err != nil {
		httpapi.ServerError(w, h.Log, "reports: create", err)
		return
	}

	h.Log.Info("content reported",
		zap.String("report_id", rp.ID.Hex()),
		zap.String("content_id", contentID.Hex()))
	httpapi.Created(w, rp)
}

// ServeList handles GET /api/v1/reports.
//
// Admins see every report; everyone else sees only reports raised
// against their own content.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		list []models.Report
		err  error
	)
	if role == models.RoleAdmin {
		list, err = h.Reports.ListAll(ctx)
	} else {
		list, err = h.Reports.ListByOwner(ctx, userID)
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "reports: list", err)
		return
	}
	if list == nil {
		list = []models.Report{}
	}
	httpapi.OK(w, list)
}

type setStatusRequest struct {
	Status string `json:"status"` // pending | resolved | ignored
}

// HandleSetStatus handles PATCH /api/v1/reports/{id}/status.
//
// Only the reported content's owner or an admin may transition status.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}

	reportID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Forbidden(w)
		return
	}

	var req setStatusRequest
	if err := httpapi.Decode(r, &req, limits.MaxJSONBody); err != nil {
		httpapi.Validation(w, "invalid request body")
		return
	}
	if !models.ValidReportStatus(req.Status) {
		httpapi.Validation(w, `status must be "pending", "resolved", or "ignored"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rp, err := h.Reports.GetByID(ctx, reportID)
	if err == reportstore.ErrNotFound {
		httpapi.Forbidden(w)
		return
	}
	if err != nil {
		httpapi.ServerError(w, h.Log, "reports: load", err)
		return
	}
	if role != models.RoleAdmin && rp.OwnerID != userID {
		httpapi.Forbidden(w)
		return
	}

	if err := h.Reports.SetStatus(ctx, reportID, req.Status); err != nil {
		httpapi.ServerError(w, h.Log, "reports: set status", err)
		return
	}

	updated, err := h.Reports.GetByID(ctx, reportID)
	if err != nil {
		httpapi.ServerError(w, h.Log, "reports: reload", err)
		return
	}
	httpapi.OK(w, updated)
}
