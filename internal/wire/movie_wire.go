package wire

import (
	"movie-feedback/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies - List published movies
	r.Get("/api/movies", movieHandler.GetMovies)

	// GET /api/movies/{id} - Movie detail with credits, rating and reviews
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// GET /api/movies/{id}/reviews - Review forest only
	r.Get("/api/movies/{id}/reviews", movieHandler.GetMovieReviews)

	// GET /api/movies/{id}/rating - Middle star and the caller's rating flag
	r.Get("/api/movies/{id}/rating", movieHandler.GetMovieRating)
}
