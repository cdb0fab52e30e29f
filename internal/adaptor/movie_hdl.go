package adaptor

import (
	"net/http"

	"movie-feedback/internal/usecase"
	"movie-feedback/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	reviews usecase.ReviewService
	ratings usecase.RatingService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, reviews usecase.ReviewService, ratings usecase.RatingService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		reviews: reviews,
		ratings: ratings,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	movies, err := h.service.GetMovies(r.Context(), identity)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	identity, _ := utils.GetIdentityFromContext(r.Context())

	movie, err := h.service.GetMovieDetail(r.Context(), movieID, identity)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// GetMovieReviews handles GET /api/movies/{id}/reviews
func (h *MovieHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	reviews, err := h.reviews.GetMovieReviews(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetMovieRating handles GET /api/movies/{id}/rating
func (h *MovieHandler) GetMovieRating(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	identity, _ := utils.GetIdentityFromContext(r.Context())

	summary, err := h.ratings.GetMovieRating(r.Context(), movieID, identity)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie rating")
		return
	}

	utils.ResponseSuccess(w, "Rating retrieved successfully", summary)
}
