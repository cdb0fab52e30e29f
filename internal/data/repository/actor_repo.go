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

type ActorRepository interface {
	FindAll(ctx context.Context) ([]*entity.Actor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Actor, error)
	// FindByMovieID returns the movie's credits for one role, ordered by name.
	FindByMovieID(ctx context.Context, movieID uuid.UUID, role entity.CreditRole) ([]*entity.Actor, error)
}

type actorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActorRepository(db database.PgxIface, log *zap.Logger) ActorRepository {
	return &actorRepository{
		db:  db,
		log: log.With(zap.String("repository", "actor")),
	}
}

func scanActor(row pgx.Row, actor *entity.Actor) error {
	return row.Scan(
		&actor.ID,
		&actor.Name,
		&actor.Age,
		&actor.Description,
		&actor.ImageURL,
		&actor.CreatedAt,
	)
}

func (r *actorRepository) FindAll(ctx context.Context) ([]*entity.Actor, error) {
	query := `SELECT id, name, age, description, image_url, created_at FROM actors ORDER BY name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find actors", zap.Error(err))
		return nil, fmt.Errorf("find actors: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *actorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Actor, error) {
	query := `SELECT id, name, age, description, image_url, created_at FROM actors WHERE id = $1`

	var actor entity.Actor
	err := scanActor(r.db.QueryRow(ctx, query, id), &actor)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find actor by ID",
			zap.Error(err),
			zap.String("actor_id", id.String()),
		)
		return nil, fmt.Errorf("find actor by id: %w", err)
	}

	return &actor, nil
}

func (r *actorRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID, role entity.CreditRole) ([]*entity.Actor, error) {
	var table string
	switch role {
	case entity.CreditDirector:
		table = "movie_directors"
	case entity.CreditActor:
		table = "movie_actors"
	default:
		return nil, fmt.Errorf("unknown credit role %q", role)
	}

	query := `
		SELECT a.id, a.name, a.age, a.description, a.image_url, a.created_at
		FROM actors a
		INNER JOIN ` + table + ` c ON a.id = c.actor_id
		WHERE c.movie_id = $1
		ORDER BY a.name, a.id
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find movie credits",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("find %s credits: %w", role, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *actorRepository) collect(rows pgx.Rows) ([]*entity.Actor, error) {
	var actors []*entity.Actor
	for rows.Next() {
		var actor entity.Actor
		if err := scanActor(rows, &actor); err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		actors = append(actors, &actor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actors: %w", err)
	}
	return actors, nil
}
