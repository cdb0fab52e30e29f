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

type MovieRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	// FindPublished lists non-draft movies ordered by title.
	FindPublished(ctx context.Context) ([]*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, tagline, description, poster_url, year, country,
	world_premiere, budget, fees_in_usa, fees_in_world, category_id, url, draft,
	created_at, updated_at, deleted_at`

func scanMovie(row pgx.Row, movie *entity.Movie) error {
	return row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Tagline,
		&movie.Description,
		&movie.PosterURL,
		&movie.Year,
		&movie.Country,
		&movie.WorldPremiere,
		&movie.Budget,
		&movie.FeesInUSA,
		&movie.FeesInWorld,
		&movie.CategoryID,
		&movie.URL,
		&movie.Draft,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)
}

// FindByID returns draft movies too; callers decide visibility.
func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL`

	var movie entity.Movie
	err := scanMovie(r.db.QueryRow(ctx, query, id), &movie)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}

	return &movie, nil
}

func (r *movieRepository) FindPublished(ctx context.Context) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE draft = FALSE AND deleted_at IS NULL
		ORDER BY title, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find published movies", zap.Error(err))
		return nil, fmt.Errorf("find published movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		if err := scanMovie(rows, &movie); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	r.log.Debug("Published movies found", zap.Int("count", len(movies)))
	return movies, nil
}
