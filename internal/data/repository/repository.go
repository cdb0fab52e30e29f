package repository

import (
	"movie-feedback/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie    MovieRepository
	Category CategoryRepository
	Genre    GenreRepository
	Actor    ActorRepository
	Review   ReviewRepository
	Rating   RatingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:    NewMovieRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Genre:    NewGenreRepository(db, log),
		Actor:    NewActorRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Rating:   NewRatingRepository(db, log),
	}
}
