// AngelaMos | 2026
// handler.go

package content

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/paywall-api/internal/core"
	"github.com/carterperez-dev/paywall-api/internal/middleware"
	"github.com/carterperez-dev/paywall-api/internal/paywall"
)

// AccessDecider produces the verdict for a (user, content) pair.
type AccessDecider interface {
	Evaluate(
		ctx context.Context,
		userID, contentID string,
	) (*paywall.AccessVerdict, error)
}

type Handler struct {
	engine AccessDecider
}

func NewHandler(engine AccessDecider) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/content", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/{contentID}", h.GetContent)
	})
}

// GetContent returns the access verdict for the caller and the requested
// content. Denials are 200 responses carrying granted=false plus an
// advisory message; only missing content or infrastructure faults error.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "authentication required")
		return
	}

	contentID := chi.URLParam(r, "contentID")

	verdict, err := h.engine.Evaluate(r.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "content")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, verdict)
}
