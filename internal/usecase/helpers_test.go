package usecase

import (
	"testing"
	"time"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/data/memstore"
	"movie-feedback/internal/data/repository"
	"movie-feedback/pkg/events"
	"movie-feedback/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	store *memstore.Store
	repo  *repository.Repository
	svc   *Service
	log   *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithLogger(t, zaptest.NewLogger(t), nil)
}

func newFixtureWithLogger(t *testing.T, log *zap.Logger, publisher *events.Publisher) *fixture {
	t.Helper()
	store := memstore.New(log)
	repo := memstore.NewRepository(store)
	config := &utils.Config{Rating: utils.RatingConfig{UpsertAttempts: 3}}
	return &fixture{
		store: store,
		repo:  repo,
		svc:   NewService(repo, config, publisher, log),
		log:   log,
	}
}

func (f *fixture) movie(title string) entity.Movie {
	return f.store.AddMovie(entity.Movie{Title: title, URL: uuid.NewString()})
}

// review builds a review created offset seconds after a fixed base time.
func review(movieID uuid.UUID, parent *uuid.UUID, name string, offset int) *entity.Review {
	r := &entity.Review{
		MovieID:  movieID,
		ParentID: parent,
		Email:    name + "@example.com",
		Name:     name,
		Text:     "text by " + name,
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Second)
	return r
}

func ptr[T any](v T) *T { return &v }
