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

type RatingRepository interface {
	// Upsert creates the (identity, movie) rating or overwrites its star in one
	// statement and returns the stored row. Lost races surface as ErrConflict.
	Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	FindByKey(ctx context.Context, identity entity.Identity, movieID uuid.UUID) (*entity.Rating, error)
	// GetStats reads sum, count and the identity's membership from one snapshot.
	GetStats(ctx context.Context, movieID uuid.UUID, identity entity.Identity) (entity.RatingStats, error)
	// ListStats is GetStats for many movies at once; movies without ratings
	// are absent from the result.
	ListStats(ctx context.Context, movieIDs []uuid.UUID, identity entity.Identity) (map[uuid.UUID]entity.RatingStats, error)
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	query := `
		INSERT INTO ratings (id, identity, movie_id, star, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (identity, movie_id)
		DO UPDATE SET star = EXCLUDED.star, updated_at = NOW()
		RETURNING id, identity, movie_id, star, created_at, updated_at
	`

	var stored entity.Rating
	err := r.db.QueryRow(ctx, query,
		rating.ID,
		string(rating.Identity),
		rating.MovieID,
		rating.Star,
	).Scan(
		&stored.ID,
		&stored.Identity,
		&stored.MovieID,
		&stored.Star,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)

	if err != nil {
		if isMissingReference(err) {
			return nil, fmt.Errorf("upsert rating: %w", ErrNotFound)
		}
		if isConflict(err) {
			r.log.Warn("Rating upsert conflict",
				zap.Error(err),
				zap.String("movie_id", rating.MovieID.String()),
			)
			return nil, fmt.Errorf("upsert rating: %w", ErrConflict)
		}
		r.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("movie_id", rating.MovieID.String()),
		)
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	r.log.Debug("Rating stored",
		zap.String("rating_id", stored.ID.String()),
		zap.String("movie_id", stored.MovieID.String()),
		zap.Int("star", stored.Star),
	)
	return &stored, nil
}

func (r *ratingRepository) FindByKey(ctx context.Context, identity entity.Identity, movieID uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, identity, movie_id, star, created_at, updated_at
		FROM ratings
		WHERE identity = $1 AND movie_id = $2
	`

	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, string(identity), movieID).Scan(
		&rating.ID,
		&rating.Identity,
		&rating.MovieID,
		&rating.Star,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find rating: %w", err)
	}

	return &rating, nil
}

func (r *ratingRepository) GetStats(ctx context.Context, movieID uuid.UUID, identity entity.Identity) (entity.RatingStats, error) {
	query := `
		SELECT COALESCE(SUM(star), 0), COUNT(*), COALESCE(BOOL_OR(identity = $2), FALSE)
		FROM ratings
		WHERE movie_id = $1
	`

	stats := entity.RatingStats{MovieID: movieID}
	err := r.db.QueryRow(ctx, query, movieID, string(identity)).Scan(
		&stats.Sum,
		&stats.Count,
		&stats.Rated,
	)
	if err != nil {
		r.log.Error("Failed to get rating stats",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return entity.RatingStats{}, fmt.Errorf("get rating stats: %w", err)
	}

	// An empty identity never matches a stored row.
	if identity == "" {
		stats.Rated = false
	}
	return stats, nil
}

func (r *ratingRepository) ListStats(ctx context.Context, movieIDs []uuid.UUID, identity entity.Identity) (map[uuid.UUID]entity.RatingStats, error) {
	result := make(map[uuid.UUID]entity.RatingStats, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT movie_id, SUM(star), COUNT(*), BOOL_OR(identity = $2)
		FROM ratings
		WHERE movie_id = ANY($1)
		GROUP BY movie_id
	`

	rows, err := r.db.Query(ctx, query, movieIDs, string(identity))
	if err != nil {
		r.log.Error("Failed to list rating stats", zap.Error(err))
		return nil, fmt.Errorf("list rating stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stats entity.RatingStats
		if err := rows.Scan(&stats.MovieID, &stats.Sum, &stats.Count, &stats.Rated); err != nil {
			r.log.Error("Failed to scan rating stats row", zap.Error(err))
			return nil, fmt.Errorf("scan rating stats: %w", err)
		}
		if identity == "" {
			stats.Rated = false
		}
		result[stats.MovieID] = stats
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating stats: %w", err)
	}
	return result, nil
}
