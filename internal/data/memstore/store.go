// Package memstore keeps every repository in process memory. It backs
// DB_DRIVER=memory for local runs and stands in for Postgres in tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ratingKey struct {
	identity entity.Identity
	movieID  uuid.UUID
}

// Store holds all tables behind one lock so multi-table reads see a single snapshot.
type Store struct {
	mu         sync.RWMutex
	movies     map[uuid.UUID]entity.Movie
	categories map[uuid.UUID]entity.Category
	genres     map[uuid.UUID]entity.Genre
	actors     map[uuid.UUID]entity.Actor
	movieGenre map[uuid.UUID][]uuid.UUID
	credits    map[entity.CreditRole]map[uuid.UUID][]uuid.UUID
	reviews    []entity.Review // insertion order
	ratings    map[ratingKey]entity.Rating

	log *zap.Logger
}

func New(log *zap.Logger) *Store {
	return &Store{
		movies:     make(map[uuid.UUID]entity.Movie),
		categories: make(map[uuid.UUID]entity.Category),
		genres:     make(map[uuid.UUID]entity.Genre),
		actors:     make(map[uuid.UUID]entity.Actor),
		movieGenre: make(map[uuid.UUID][]uuid.UUID),
		credits: map[entity.CreditRole]map[uuid.UUID][]uuid.UUID{
			entity.CreditDirector: {},
			entity.CreditActor:    {},
		},
		ratings: make(map[ratingKey]entity.Rating),
		log:     log.With(zap.String("repository", "memory")),
	}
}

// NewRepository returns a Repository whose every member reads and writes s.
func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		Movie:    movieRepo{s},
		Category: categoryRepo{s},
		Genre:    genreRepo{s},
		Actor:    actorRepo{s},
		Review:   reviewRepo{s},
		Rating:   ratingRepo{s},
	}
}

// ==================== SEEDING ====================

func (s *Store) AddCategory(c entity.Category) entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.categories[c.ID] = c
	return c
}

func (s *Store) AddGenre(g entity.Genre) entity.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	s.genres[g.ID] = g
	return g
}

func (s *Store) AddActor(a entity.Actor) entity.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.actors[a.ID] = a
	return a
}

func (s *Store) AddMovie(m entity.Movie) entity.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	s.movies[m.ID] = m
	return m
}

func (s *Store) LinkGenre(movieID, genreID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movieGenre[movieID] = append(s.movieGenre[movieID], genreID)
}

func (s *Store) LinkCredit(movieID, actorID uuid.UUID, role entity.CreditRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credits[role]; !ok {
		s.credits[role] = make(map[uuid.UUID][]uuid.UUID)
	}
	s.credits[role][movieID] = append(s.credits[role][movieID], actorID)
}

// Counts reports table sizes; used by the stats command and tests.
func (s *Store) Counts() (reviews, ratings int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews), len(s.ratings)
}

// ==================== MOVIES ====================

type movieRepo struct{ s *Store }

func (r movieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movies[id]
	if !ok || m.DeletedAt != nil {
		return nil, nil
	}
	return &m, nil
}

func (r movieRepo) FindPublished(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var movies []*entity.Movie
	for _, m := range r.s.movies {
		if !m.Published() {
			continue
		}
		m := m
		movies = append(movies, &m)
	}
	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Title != movies[j].Title {
			return movies[i].Title < movies[j].Title
		}
		return movies[i].ID.String() < movies[j].ID.String()
	})
	return movies, nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type genreRepo struct{ s *Store }

func (r genreRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var genres []*entity.Genre
	for _, id := range r.s.movieGenre[movieID] {
		if g, ok := r.s.genres[id]; ok {
			genres = append(genres, &g)
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

type actorRepo struct{ s *Store }

func (r actorRepo) FindAll(_ context.Context) ([]*entity.Actor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	actors := make([]*entity.Actor, 0, len(r.s.actors))
	for _, a := range r.s.actors {
		a := a
		actors = append(actors, &a)
	}
	sortActors(actors)
	return actors, nil
}

func (r actorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Actor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.actors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r actorRepo) FindByMovieID(_ context.Context, movieID uuid.UUID, role entity.CreditRole) ([]*entity.Actor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byMovie, ok := r.s.credits[role]
	if !ok {
		return nil, fmt.Errorf("unknown credit role %q", role)
	}
	var actors []*entity.Actor
	for _, id := range byMovie[movieID] {
		if a, ok := r.s.actors[id]; ok {
			actors = append(actors, &a)
		}
	}
	sortActors(actors)
	return actors, nil
}

func sortActors(actors []*entity.Actor) {
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].Name != actors[j].Name {
			return actors[i].Name < actors[j].Name
		}
		return actors[i].ID.String() < actors[j].ID.String()
	})
}

// ==================== REVIEWS ====================

type reviewRepo struct{ s *Store }

// Create appends without checking the parent; the service validates it.
func (r reviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.ID == review.ID {
			return fmt.Errorf("create review: %w", repository.ErrConflict)
		}
	}
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r reviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, review := range r.s.reviews {
		if review.ID == id {
			return &review, nil
		}
	}
	return nil, nil
}

func (r reviewRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var reviews []*entity.Review
	for _, review := range r.s.reviews {
		if review.MovieID == movieID {
			review := review
			reviews = append(reviews, &review)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r reviewRepo) DeleteSubtree(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doomed := map[uuid.UUID]bool{}
	for _, review := range r.s.reviews {
		if review.ID == id {
			doomed[id] = true
			break
		}
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	// Sweep until no new descendants turn up.
	for grew := true; grew; {
		grew = false
		for _, review := range r.s.reviews {
			if review.ParentID != nil && doomed[*review.ParentID] && !doomed[review.ID] {
				doomed[review.ID] = true
				grew = true
			}
		}
	}

	kept := r.s.reviews[:0]
	for _, review := range r.s.reviews {
		if !doomed[review.ID] {
			kept = append(kept, review)
		}
	}
	r.s.reviews = kept

	r.s.log.Debug("Review subtree deleted",
		zap.String("review_id", id.String()),
		zap.Int("deleted", len(doomed)),
	)
	return int64(len(doomed)), nil
}

func (r reviewRepo) CountByMovieID(_ context.Context, movieID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, review := range r.s.reviews {
		if review.MovieID == movieID {
			count++
		}
	}
	return count, nil
}

// ==================== RATINGS ====================

type ratingRepo struct{ s *Store }

func (r ratingRepo) Upsert(_ context.Context, rating *entity.Rating) (*entity.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	key := ratingKey{identity: rating.Identity, movieID: rating.MovieID}

	stored, ok := r.s.ratings[key]
	if ok {
		stored.Star = rating.Star
		stored.UpdatedAt = now
	} else {
		stored = *rating
		if stored.ID == uuid.Nil {
			stored.ID = uuid.New()
		}
		stored.CreatedAt = now
		stored.UpdatedAt = now
	}
	r.s.ratings[key] = stored
	return &stored, nil
}

func (r ratingRepo) FindByKey(_ context.Context, identity entity.Identity, movieID uuid.UUID) (*entity.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rating, ok := r.s.ratings[ratingKey{identity: identity, movieID: movieID}]
	if !ok {
		return nil, nil
	}
	return &rating, nil
}

func (r ratingRepo) GetStats(_ context.Context, movieID uuid.UUID, identity entity.Identity) (entity.RatingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.statsLocked(movieID, identity), nil
}

func (r ratingRepo) ListStats(_ context.Context, movieIDs []uuid.UUID, identity entity.Identity) (map[uuid.UUID]entity.RatingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[uuid.UUID]entity.RatingStats, len(movieIDs))
	for _, id := range movieIDs {
		if stats := r.s.statsLocked(id, identity); stats.Count > 0 {
			result[id] = stats
		}
	}
	return result, nil
}

func (s *Store) statsLocked(movieID uuid.UUID, identity entity.Identity) entity.RatingStats {
	stats := entity.RatingStats{MovieID: movieID}
	for key, rating := range s.ratings {
		if key.movieID != movieID {
			continue
		}
		stats.Sum += int64(rating.Star)
		stats.Count++
		if identity != "" && key.identity == identity {
			stats.Rated = true
		}
	}
	return stats
}

var (
	_ repository.MovieRepository    = movieRepo{}
	_ repository.CategoryRepository = categoryRepo{}
	_ repository.GenreRepository    = genreRepo{}
	_ repository.ActorRepository    = actorRepo{}
	_ repository.ReviewRepository   = reviewRepo{}
	_ repository.RatingRepository   = ratingRepo{}
)
