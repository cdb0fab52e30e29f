package usecase

import (
	"context"
	"fmt"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/data/repository"
	"movie-feedback/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	// GetMovies lists every published movie with the caller's rating view.
	GetMovies(ctx context.Context, identity entity.Identity) ([]response.MovieListItem, error)
	GetMovieDetail(ctx context.Context, movieID string, identity entity.Identity) (*response.MovieDetailResponse, error)
}

type movieService struct {
	repo    *repository.Repository
	ratings RatingService
	log     *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	ratings RatingService,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, identity entity.Identity) ([]response.MovieListItem, error) {
	movies, err := s.repo.Movie.FindPublished(ctx)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(movies))
	for _, movie := range movies {
		ids = append(ids, movie.ID)
	}

	stats, err := s.repo.Rating.ListStats(ctx, ids, identity)
	if err != nil {
		s.log.Error("Failed to get rating stats", zap.Error(err))
		return nil, fmt.Errorf("get rating stats: %w", err)
	}

	items := make([]response.MovieListItem, 0, len(movies))
	for _, movie := range movies {
		// a missing entry is a movie nobody rated yet
		items = append(items, response.MovieToListItem(movie, SummaryFromStats(stats[movie.ID])))
	}

	s.log.Debug("Movies listed", zap.Int("count", len(items)))
	return items, nil
}

func (s *movieService) GetMovieDetail(ctx context.Context, movieID string, identity entity.Identity) (*response.MovieDetailResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if !movie.Published() {
		return nil, &NotFoundError{Resource: "movie", ID: movieID}
	}

	var categoryName string
	if movie.CategoryID != nil {
		category, err := s.repo.Category.FindByID(ctx, *movie.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("get category: %w", err)
		}
		if category != nil {
			categoryName = category.Name
		}
	}

	directors, err := s.repo.Actor.FindByMovieID(ctx, id, entity.CreditDirector)
	if err != nil {
		return nil, fmt.Errorf("get directors: %w", err)
	}

	actors, err := s.repo.Actor.FindByMovieID(ctx, id, entity.CreditActor)
	if err != nil {
		return nil, fmt.Errorf("get actors: %w", err)
	}

	genres, err := s.repo.Genre.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}

	summary, err := s.ratings.Aggregate(ctx, id, identity)
	if err != nil {
		return nil, err
	}

	reviews, err := loadReviewTree(ctx, s.repo.Review, s.log, id)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToDetailResponse(movie, categoryName, directors, actors, genres, summary, reviews)
	return &resp, nil
}
