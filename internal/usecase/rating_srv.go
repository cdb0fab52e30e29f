package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/data/repository"
	"movie-feedback/internal/dto/request"
	"movie-feedback/internal/dto/response"
	"movie-feedback/pkg/events"
	"movie-feedback/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	// SubmitRating validates req and stores the caller's star for the movie.
	SubmitRating(ctx context.Context, identity entity.Identity, req *request.CreateRatingRequest) (*response.RatingResponse, error)
	// Submit creates or overwrites the (identity, movie) rating.
	Submit(ctx context.Context, identity entity.Identity, movieID uuid.UUID, star int) (*entity.Rating, error)
	// GetMovieRating is Aggregate for a visible movie.
	GetMovieRating(ctx context.Context, movieID string, identity entity.Identity) (*response.RatingSummary, error)
	// Aggregate computes middle star and membership from one snapshot.
	Aggregate(ctx context.Context, movieID uuid.UUID, identity entity.Identity) (response.RatingSummary, error)
}

type ratingService struct {
	repo      *repository.Repository
	publisher *events.Publisher
	attempts  int
	log       *zap.Logger
}

func NewRatingService(repo *repository.Repository, config *utils.Config, publisher *events.Publisher, log *zap.Logger) RatingService {
	attempts := config.Rating.UpsertAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &ratingService{
		repo:      repo,
		publisher: publisher,
		attempts:  attempts,
		log:       log.With(zap.String("service", "rating")),
	}
}

// MiddleStar is the mean star rounded half up; 0 when nobody rated.
func MiddleStar(sum, count int64) int {
	if count <= 0 {
		return 0
	}
	return int((2*sum + count) / (2 * count))
}

func SummaryFromStats(stats entity.RatingStats) response.RatingSummary {
	return response.RatingSummary{
		MiddleStar: MiddleStar(stats.Sum, stats.Count),
		RatingUser: stats.Rated,
	}
}

func (s *ratingService) SubmitRating(ctx context.Context, identity entity.Identity, req *request.CreateRatingRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit rating validation failed", zap.Any("errors", errs))
		return nil, newValidationErrors(errs)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, newValidationError("movie_id", "Must be a valid UUID")
	}

	rating, err := s.Submit(ctx, identity, movieID, req.Star)
	if err != nil {
		return nil, err
	}

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) Submit(ctx context.Context, identity entity.Identity, movieID uuid.UUID, star int) (*entity.Rating, error) {
	if star < entity.MinStar || star > entity.MaxStar {
		return nil, newValidationError("star", fmt.Sprintf("Must be between %d and %d", entity.MinStar, entity.MaxStar))
	}
	if identity == "" {
		return nil, newValidationError("identity", "Requester identity is required")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if !movie.Published() {
		return nil, &NotFoundError{Resource: "movie", ID: movieID.String()}
	}

	candidate := &entity.Rating{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Identity:     identity,
		MovieID:      movieID,
		Star:         star,
	}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		stored, err := s.repo.Rating.Upsert(ctx, candidate)
		if err == nil {
			s.log.Info("Rating submitted",
				zap.String("movie_id", movieID.String()),
				zap.Int("star", stored.Star),
				zap.Int("attempt", attempt),
			)
			s.publisher.RatingSubmitted(events.RatingSubmitted{
				MovieID:  movieID,
				Identity: string(identity),
				Star:     stored.Star,
			})
			return stored, nil
		}

		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, &NotFoundError{Resource: "movie", ID: movieID.String()}
		case !errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("upsert rating: %w", err)
		}

		lastErr = err
		s.log.Warn("Rating upsert conflict, retrying",
			zap.String("movie_id", movieID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 5 * time.Millisecond):
		}
	}

	s.log.Error("Rating upsert gave up",
		zap.String("movie_id", movieID.String()),
		zap.Int("attempts", s.attempts),
		zap.Error(lastErr),
	)
	return nil, &IntegrityError{Op: "submit rating", Err: lastErr}
}

func (s *ratingService) GetMovieRating(ctx context.Context, movieID string, identity entity.Identity) (*response.RatingSummary, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if !movie.Published() {
		return nil, &NotFoundError{Resource: "movie", ID: movieID}
	}

	summary, err := s.Aggregate(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *ratingService) Aggregate(ctx context.Context, movieID uuid.UUID, identity entity.Identity) (response.RatingSummary, error) {
	stats, err := s.repo.Rating.GetStats(ctx, movieID, identity)
	if err != nil {
		return response.RatingSummary{}, fmt.Errorf("aggregate rating: %w", err)
	}
	return SummaryFromStats(stats), nil
}
