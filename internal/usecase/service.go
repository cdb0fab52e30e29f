package usecase

import (
	"movie-feedback/internal/data/repository"
	"movie-feedback/pkg/events"
	"movie-feedback/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Movie  MovieService
	Review ReviewService
	Rating RatingService
	Actor  ActorService
}

// NewService wires every use case; publisher may be nil.
func NewService(repo *repository.Repository, config *utils.Config, publisher *events.Publisher, log *zap.Logger) *Service {
	rating := NewRatingService(repo, config, publisher, log)
	return &Service{
		Movie:  NewMovieService(repo, rating, log),
		Review: NewReviewService(repo, publisher, log),
		Rating: rating,
		Actor:  NewActorService(repo.Actor, log),
	}
}
