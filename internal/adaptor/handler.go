package adaptor

import (
	"movie-feedback/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie  *MovieHandler
	Review *ReviewHandler
	Rating *RatingHandler
	Actor  *ActorHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:  NewMovieHandler(service.Movie, service.Review, service.Rating, log),
		Review: NewReviewHandler(service.Review, log),
		Rating: NewRatingHandler(service.Rating, log),
		Actor:  NewActorHandler(service.Actor, log),
	}
}
