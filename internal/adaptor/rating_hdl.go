package adaptor

import (
	"net/http"

	"movie-feedback/internal/dto/request"
	"movie-feedback/internal/usecase"
	"movie-feedback/pkg/utils"

	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// SubmitRating handles POST /api/ratings
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		h.log.Error("Identity missing from context", zap.String("path", r.URL.Path))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	var req request.CreateRatingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("Invalid rating body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", bodyErrors(err))
		return
	}

	rating, err := h.service.SubmitRating(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "submit rating")
		return
	}

	utils.ResponseCreated(w, "Rating saved successfully", rating)
}
