// AngelaMos | 2026
// handler.go

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/paywall-api/internal/core"
	"github.com/carterperez-dev/paywall-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/subscription", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/purchase", h.Purchase)
	})
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.Purchase(
		r.Context(), userID, req.PlanID, req.PaymentToken,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "unknown plan: "+req.PlanID)
		case errors.Is(err, core.ErrPaymentDeclined):
			core.JSONError(w, core.PaymentDeclinedError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, PurchaseResponse{
		SubscriptionID: sub.ID,
		PlanID:         sub.PlanID,
		StartedAt:      sub.StartedAt,
		ExpiresAt:      sub.ExpiresAt,
	})
}
