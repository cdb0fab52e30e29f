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

type ReviewService interface {
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewNode, error)
	// DeleteReview removes the review together with every reply beneath it.
	DeleteReview(ctx context.Context, reviewID string) (*response.ReviewDeleteResponse, error)
}

type reviewService struct {
	repo      *repository.Repository
	publisher *events.Publisher
	log       *zap.Logger
}

func NewReviewService(repo *repository.Repository, publisher *events.Publisher, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, newValidationErrors(errs)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, newValidationError("movie_id", "Must be a valid UUID")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if !movie.Published() {
		return nil, &NotFoundError{Resource: "movie", ID: req.MovieID}
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, newValidationError("parent_id", "Must be a valid UUID")
		}

		parent, err := s.repo.Review.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find parent review: %w", err)
		}
		if parent == nil {
			return nil, &NotFoundError{Resource: "review", ID: id.String()}
		}
		if parent.MovieID != movieID {
			s.log.Warn("Reply targets a review of another movie",
				zap.String("movie_id", movieID.String()),
				zap.String("parent_id", id.String()),
				zap.String("parent_movie_id", parent.MovieID.String()),
			)
			return nil, newValidationError("parent", "Parent review belongs to a different movie")
		}
		parentID = &id
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		MovieID:  movieID,
		ParentID: parentID,
		Email:    req.Email,
		Name:     req.Name,
		Text:     req.Text,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// parent or movie vanished between the check and the insert
			if parentID != nil {
				return nil, &NotFoundError{Resource: "review", ID: parentID.String()}
			}
			return nil, &NotFoundError{Resource: "movie", ID: req.MovieID}
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, &IntegrityError{Op: "create review", Err: err}
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.publisher.ReviewCreated(events.ReviewCreated{
		ReviewID: review.ID,
		MovieID:  review.MovieID,
		ParentID: review.ParentID,
	})

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewNode, error) {
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

	return loadReviewTree(ctx, s.repo.Review, s.log, id)
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) (*response.ReviewDeleteResponse, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	deleted, err := s.repo.Review.DeleteSubtree(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &IntegrityError{Op: "delete review", Err: err}
		}
		return nil, fmt.Errorf("delete review: %w", err)
	}
	if deleted == 0 {
		return nil, &NotFoundError{Resource: "review", ID: reviewID}
	}

	s.log.Info("Review deleted with replies",
		zap.String("review_id", reviewID),
		zap.Int64("deleted", deleted),
	)
	s.publisher.ReviewDeleted(events.ReviewDeleted{ReviewID: id, Deleted: deleted})

	return &response.ReviewDeleteResponse{ID: reviewID, Deleted: deleted}, nil
}

// loadReviewTree fetches and encodes one movie's reviews, reporting any
// orphans it had to leave out.
func loadReviewTree(ctx context.Context, reviews repository.ReviewRepository, log *zap.Logger, movieID uuid.UUID) ([]response.ReviewNode, error) {
	all, err := reviews.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	nodes, orphans := EncodeReviewTree(all)
	if len(orphans) > 0 {
		ids := make([]string, 0, len(orphans))
		for _, orphan := range orphans {
			ids = append(ids, orphan.ID.String())
		}
		log.Warn("Orphaned reviews excluded from tree",
			zap.String("movie_id", movieID.String()),
			zap.Strings("orphan_ids", ids),
		)
	}
	return nodes, nil
}
