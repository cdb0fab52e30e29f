package wire

import (
	"movie-feedback/internal/adaptor"
	"movie-feedback/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/reviews - Submit a review or a reply (rate limited per identity)
	r.With(limiter.Limit(log)).Post("/api/reviews", reviewHandler.CreateReview)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reviews", func(r chi.Router) {
		r.Use(middleware.Admin(log)) // Must hold an admin token

		// DELETE /api/admin/reviews/{id} - Remove review with all replies
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
