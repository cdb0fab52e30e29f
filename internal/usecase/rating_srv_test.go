package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"movie-feedback/internal/data/entity"
	"movie-feedback/internal/data/repository"
	"movie-feedback/internal/dto/request"
	"movie-feedback/pkg/events"
	"movie-feedback/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

func TestMiddleStar(t *testing.T) {
	cases := []struct {
		name  string
		stars []int64
		want  int
	}{
		{"none", nil, 0},
		{"single", []int64{4}, 4},
		{"rounds_down", []int64{2, 4, 4}, 3},
		{"half_rounds_up", []int64{1, 2}, 2},
		{"third", []int64{1, 1, 2}, 1},
		{"two_thirds", []int64{1, 2, 2}, 2},
		{"all_five", []int64{5, 5, 5, 5}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sum int64
			for _, s := range tc.stars {
				sum += s
			}
			if got := MiddleStar(sum, int64(len(tc.stars))); got != tc.want {
				t.Fatalf("MiddleStar(%v) = %d, want %d", tc.stars, got, tc.want)
			}
		})
	}
}

func TestSubmit_OverwritesSameKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movie := f.movie("Stalker")

	first, err := f.svc.Rating.Submit(ctx, "10.0.0.1", movie.ID, 3)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	stored, err := f.svc.Rating.Submit(ctx, "10.0.0.1", movie.ID, 5)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if stored.Star != 5 {
		t.Fatalf("expected star 5, got %d", stored.Star)
	}

	row, err := f.repo.Rating.FindByKey(ctx, "10.0.0.1", movie.ID)
	if err != nil {
		t.Fatalf("find by key: %v", err)
	}
	if row == nil || row.Star != 5 || row.ID != first.ID {
		t.Fatalf("expected the first row overwritten with star 5, got %+v", row)
	}
	if missing, err := f.repo.Rating.FindByKey(ctx, "10.0.0.2", movie.ID); err != nil || missing != nil {
		t.Fatalf("expected no row for another identity, got %+v (%v)", missing, err)
	}
	if _, ratings := f.store.Counts(); ratings != 1 {
		t.Fatalf("expected one rating row, got %d", ratings)
	}

	summary, err := f.svc.Rating.Aggregate(ctx, movie.ID, "10.0.0.1")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if summary.MiddleStar != 5 || !summary.RatingUser {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestAggregate_RatingUserPerIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movie := f.movie("Brazil")

	for identity, star := range map[entity.Identity]int{"a": 2, "c": 4, "d": 4} {
		if _, err := f.svc.Rating.Submit(ctx, identity, movie.ID, star); err != nil {
			t.Fatalf("submit %s: %v", identity, err)
		}
	}

	cases := []struct {
		identity entity.Identity
		rated    bool
	}{
		{"a", true},
		{"b", false},
		{"", false},
	}
	for _, tc := range cases {
		summary, err := f.svc.Rating.Aggregate(ctx, movie.ID, tc.identity)
		if err != nil {
			t.Fatalf("aggregate %q: %v", tc.identity, err)
		}
		if summary.MiddleStar != 3 {
			t.Fatalf("expected middle star 3, got %d", summary.MiddleStar)
		}
		if summary.RatingUser != tc.rated {
			t.Fatalf("identity %q: expected rating_user %v", tc.identity, tc.rated)
		}
	}
}

func TestAggregate_NoRatings(t *testing.T) {
	f := newFixture(t)
	movie := f.movie("Empty")

	summary, err := f.svc.Rating.Aggregate(context.Background(), movie.ID, "anyone")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if summary.MiddleStar != 0 || summary.RatingUser {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestSubmit_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	published := f.movie("Published")
	draft := f.store.AddMovie(entity.Movie{Title: "Draft", URL: "draft", Draft: true})

	for _, star := range []int{0, 6, -1} {
		_, err := f.svc.Rating.Submit(ctx, "ip", published.ID, star)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "star" {
			t.Fatalf("star %d: expected ValidationError on star, got %v", star, err)
		}
	}

	for name, id := range map[string]uuid.UUID{"draft": draft.ID, "unknown": uuid.New()} {
		_, err := f.svc.Rating.Submit(ctx, "ip", id, 3)
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Resource != "movie" {
			t.Fatalf("%s: expected NotFoundError, got %v", name, err)
		}
	}

	if _, ratings := f.store.Counts(); ratings != 0 {
		t.Fatalf("rejected submissions must not write, found %d rows", ratings)
	}
}

func TestSubmitRating_ValidatesRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Rating.SubmitRating(context.Background(), "ip", &request.CreateRatingRequest{MovieID: "nope", Star: 9})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["star"]; !ok {
		t.Fatalf("expected star in fields, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["movie_id"]; !ok {
		t.Fatalf("expected movie_id in fields, got %v", verr.Fields)
	}
}

func TestSubmit_ConcurrentSameKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	movie := f.movie("Race")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(star int) {
			defer wg.Done()
			if _, err := f.svc.Rating.Submit(ctx, "shared", movie.ID, star); err != nil {
				t.Errorf("submit: %v", err)
			}
		}(i%5 + 1)
	}
	wg.Wait()

	if _, ratings := f.store.Counts(); ratings != 1 {
		t.Fatalf("expected exactly one row, got %d", ratings)
	}
}

// flakyRatings fails the first n upserts with a retryable conflict.
type flakyRatings struct {
	repository.RatingRepository
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyRatings) Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()

	if fail {
		return nil, fmt.Errorf("upsert rating: %w", repository.ErrConflict)
	}
	return f.RatingRepository.Upsert(ctx, rating)
}

func TestSubmit_RetriesConflicts(t *testing.T) {
	f := newFixture(t)
	movie := f.movie("Retry")

	flaky := &flakyRatings{RatingRepository: f.repo.Rating, failures: 2}
	f.repo.Rating = flaky
	svc := NewRatingService(f.repo, &utils.Config{Rating: utils.RatingConfig{UpsertAttempts: 3}}, nil, f.log)

	stored, err := svc.Submit(context.Background(), "ip", movie.ID, 4)
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if stored.Star != 4 || flaky.calls != 3 {
		t.Fatalf("unexpected result star=%d calls=%d", stored.Star, flaky.calls)
	}
}

func TestSubmit_GivesUpAsIntegrityError(t *testing.T) {
	f := newFixture(t)
	movie := f.movie("Hopeless")

	flaky := &flakyRatings{RatingRepository: f.repo.Rating, failures: 100}
	f.repo.Rating = flaky
	svc := NewRatingService(f.repo, &utils.Config{Rating: utils.RatingConfig{UpsertAttempts: 2}}, nil, f.log)

	_, err := svc.Submit(context.Background(), "ip", movie.ID, 4)
	var ierr *IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected wrapped conflict, got %v", err)
	}
	if flaky.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", flaky.calls)
	}
}

type captureConn struct {
	mu       sync.Mutex
	subjects []string
}

func (c *captureConn) Publish(subject string, _ []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subjects = append(c.subjects, subject)
	return nil
}

func TestSubmit_PublishesEvent(t *testing.T) {
	log := zaptest.NewLogger(t)
	conn := &captureConn{}
	f := newFixtureWithLogger(t, log, events.NewPublisher(conn, "movies", log))
	movie := f.movie("Events")

	if _, err := f.svc.Rating.Submit(context.Background(), "ip", movie.ID, 2); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(conn.subjects) != 1 || conn.subjects[0] != "movies.rating.submitted" {
		t.Fatalf("unexpected subjects %v", conn.subjects)
	}
}
