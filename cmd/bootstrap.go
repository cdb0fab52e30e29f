package cmd

import (
	"context"
	"fmt"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/data/memstore"
	"movie-feedback/internal/data/repository"
	"movie-feedback/pkg/database"
	"movie-feedback/pkg/utils"

	"go.uber.org/zap"
)

// openRepository selects the storage backend named by DB_DRIVER. The
// returned close func is never nil.
func openRepository(ctx context.Context, config *utils.Config, log *zap.Logger) (*repository.Repository, func(), error) {
	switch config.Database.Driver {
	case utils.DriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memstore.New(log)
		seedDemo(store)
		return memstore.NewRepository(store), func() {}, nil

	case utils.DriverPostgres:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		log.Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.String("name", config.Database.Name),
		)
		return repository.NewRepository(db, log), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", config.Database.Driver)
}

// seedDemo gives a memory-backed server one movie to talk about.
func seedDemo(store *memstore.Store) {
	category := store.AddCategory(entity.Category{Name: "Films", URL: "films"})
	genre := store.AddGenre(entity.Genre{Name: "Sci-Fi", URL: "sci-fi"})
	director := store.AddActor(entity.Actor{Name: "Andrei Tarkovsky", Age: 54})
	actor := store.AddActor(entity.Actor{Name: "Donatas Banionis", Age: 90})

	movie := store.AddMovie(entity.Movie{
		Title:      "Solaris",
		Tagline:    "The ocean remembers",
		Year:       1972,
		Country:    "USSR",
		CategoryID: &category.ID,
		URL:        "solaris",
	})
	store.LinkGenre(movie.ID, genre.ID)
	store.LinkCredit(movie.ID, director.ID, entity.CreditDirector)
	store.LinkCredit(movie.ID, actor.ID, entity.CreditActor)
}
