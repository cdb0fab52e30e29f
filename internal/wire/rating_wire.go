package wire

import (
	"movie-feedback/internal/adaptor"
	"movie-feedback/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/ratings - Create or overwrite the caller's star
	r.With(limiter.Limit(log)).Post("/api/ratings", ratingHandler.SubmitRating)
}
