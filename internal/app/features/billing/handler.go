// internal/app/features/billing/handler.go
package billing

import (
	"context"
	"net/http"

	userstore "github.com/braincachehq/braincache/internal/app/store/users"
	"github.com/braincachehq/braincache/internal/app/system/auth"
	"github.com/braincachehq/braincache/internal/app/system/authz"
	"github.com/braincachehq/braincache/internal/app/system/httpapi"
	"github.com/braincachehq/braincache/internal/app/system/limits"
	"github.com/braincachehq/braincache/internal/app/system/payments"
	"github.com/braincachehq/braincache/internal/app/system/timeouts"
	"github.com/braincachehq/braincache/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler provides Pro subscription endpoints: checkout creation and the
// provider webhook that flips the plan.
type Handler struct {
	Users       *userstore.Store
	Payments    *payments.Client
	FrontendURL string
	Log         *zap.Logger
}

// NewHandler creates a new billing Handler.
func NewHandler(users *userstore.Store, client *payments.Client, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       users,
		Payments:    client,
		FrontendURL: frontendURL,
		Log:         logger,
	}
}

// HandleCheckout handles POST /api/v1/billing/checkout.
//
// Returns the provider-hosted payment URL. Already-pro users get a
// conflict instead of a second subscription.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	_, plan, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Unauthorized(w)
		return
	}
	if !h.Payments.Enabled() {
		httpapi.Validation(w, "payments are not configured")
		return
	}
	if plan == models.PlanPro {
		httpapi.Conflict(w, "you are already on the pro plan")
		return
	}

	sessionUser, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	session, err := h.Payments.CreateCheckout(ctx, userID.Hex(), sessionUser.Email, h.FrontendURL+"/billing/success")
	if err != nil {
		httpapi.ServerError(w, h.Log, "billing: create checkout", err)
		return
	}

	h.Log.Info("checkout session created",
		zap.String("user_id", userID.Hex()),
		zap.String("reference", session.Reference))
	httpapi.OK(w, session)
}

// HandleWebhook handles POST /api/v1/billing/webhook.
//
// Unauthenticated but signature-verified. A paid event upgrades the
// referenced user to pro; everything else is acknowledged and dropped.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ev, err := h.Payments.ParseWebhook(r, limits.MaxJSONBody)
	if err != nil {
		h.Log.Warn("billing webhook rejected", zap.Error(err))
		httpapi.Validation(w, "invalid webhook payload")
		return
	}

	if ev.Status != payments.StatusPaid {
		h.Log.Info("billing webhook ignored",
			zap.String("reference", ev.Reference),
			zap.String("status", ev.Status))
		httpapi.NoContent(w)
		return
	}

	userID, err := primitive.ObjectIDFromHex(ev.UserID)
	if err != nil {
		h.Log.Warn("billing webhook has malformed user id",
			zap.String("reference", ev.Reference))
		httpapi.Validation(w, "invalid webhook payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.SetPlan(ctx, userID, models.PlanPro); err != nil {
		httpapi.ServerError(w, h.Log, "billing: set plan", err)
		return
	}

	h.Log.Info("user upgraded to pro",
		zap.String("user_id", ev.UserID),
		zap.String("reference", ev.Reference))
	httpapi.NoContent(w)
}
