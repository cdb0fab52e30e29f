package repository

import (
	"context"
	"fmt"

	"movie-feedback/internal/data/entity"
	"movie-feedback/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	// FindByMovieID returns every review of the movie, oldest first.
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Review, error)
	// DeleteSubtree removes the review and all of its descendants, returning
	// how many rows went. Zero means the review did not exist.
	DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error)
	CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, movie_id, parent_id, email, name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.MovieID,
		review.ParentID,
		review.Email,
		review.Name,
		review.Text,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("movie_id", review.MovieID.String()),
		)
		if isMissingReference(err) {
			return fmt.Errorf("create review: %w", ErrNotFound)
		}
		if isConflict(err) {
			return fmt.Errorf("create review: %w", ErrConflict)
		}
		return fmt.Errorf("create review: %w", err)
	}

	r.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("movie_id", review.MovieID.String()),
		zap.Bool("reply", !review.IsRoot()),
	)
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, movie_id, parent_id, email, name, text, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := scanReview(r.db.QueryRow(ctx, query, id), &review)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by id: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, movie_id, parent_id, email, name, text, created_at
		FROM reviews
		WHERE movie_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find reviews by movie id: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		if err := scanReview(rows, &review); err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM reviews WHERE id = $1
			UNION
			SELECT c.id FROM reviews c INNER JOIN subtree s ON c.parent_id = s.id
		)
		DELETE FROM reviews WHERE id IN (SELECT id FROM subtree)
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review subtree",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		if isConflict(err) {
			return 0, fmt.Errorf("delete review subtree: %w", ErrConflict)
		}
		return 0, fmt.Errorf("delete review subtree: %w", err)
	}

	deleted := result.RowsAffected()
	r.log.Info("Review subtree deleted",
		zap.String("review_id", id.String()),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}

func (r *reviewRepository) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func scanReview(row pgx.Row, review *entity.Review) error {
	return row.Scan(
		&review.ID,
		&review.MovieID,
		&review.ParentID,
		&review.Email,
		&review.Name,
		&review.Text,
		&review.CreatedAt,
	)
}
