package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"movie-feedback/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap/zaptest"
)

// fakeRow scans canned values, converting to each destination's type.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		dv.Set(reflect.ValueOf(r.values[i]).Convert(dv.Type()))
	}
	return nil
}

// fakeDB records the last statement and answers with canned results.
type fakeDB struct {
	sql  string
	args []any

	row     fakeRow
	tag     pgconn.CommandTag
	execErr error
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported by fake")
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.sql, db.args = sql, args
	return db.row
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.sql, db.args = sql, args
	return db.tag, db.execErr
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("transactions not supported by fake")
}

func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close()                     {}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "sqlstate " + code}
}

func TestPgErrorClassification(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		conflict bool
		missing  bool
	}{
		{"unique", pgError("23505"), true, false},
		{"serialization", pgError("40001"), true, false},
		{"deadlock", fmt.Errorf("wrapped: %w", pgError("40P01")), true, false},
		{"foreign_key", pgError("23503"), false, true},
		{"check", pgError("23514"), false, false},
		{"plain", errors.New("connection reset"), false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isConflict(tc.err); got != tc.conflict {
				t.Fatalf("isConflict = %v, want %v", got, tc.conflict)
			}
			if got := isMissingReference(tc.err); got != tc.missing {
				t.Fatalf("isMissingReference = %v, want %v", got, tc.missing)
			}
		})
	}
}

func TestRatingUpsert(t *testing.T) {
	movieID := uuid.New()
	ratingID := uuid.New()
	now := time.Now().UTC()

	db := &fakeDB{row: fakeRow{values: []any{ratingID, entity.Identity("10.0.0.1"), movieID, 4, now, now}}}
	repo := NewRatingRepository(db, zaptest.NewLogger(t))

	stored, err := repo.Upsert(context.Background(), &entity.Rating{
		BaseNoDelete: entity.BaseNoDelete{ID: ratingID},
		Identity:     "10.0.0.1",
		MovieID:      movieID,
		Star:         4,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if stored.ID != ratingID || stored.Star != 4 || stored.Identity != "10.0.0.1" {
		t.Fatalf("unexpected stored row %+v", stored)
	}
	if !strings.Contains(db.sql, "ON CONFLICT (identity, movie_id)") || !strings.Contains(db.sql, "RETURNING") {
		t.Fatalf("upsert must be a single returning statement, got:\n%s", db.sql)
	}
	if db.args[1] != "10.0.0.1" {
		t.Fatalf("identity must be bound as a plain string, got %#v", db.args[1])
	}
}

func TestRatingUpsert_MapsErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"conflict", pgError("23505"), ErrConflict},
		{"serialization", pgError("40001"), ErrConflict},
		{"movie_gone", pgError("23503"), ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &fakeDB{row: fakeRow{err: tc.err}}
			repo := NewRatingRepository(db, zaptest.NewLogger(t))

			_, err := repo.Upsert(context.Background(), &entity.Rating{Identity: "a", MovieID: uuid.New(), Star: 3})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	db := &fakeDB{row: fakeRow{err: errors.New("connection reset")}}
	_, err := NewRatingRepository(db, zaptest.NewLogger(t)).Upsert(context.Background(), &entity.Rating{Identity: "a", MovieID: uuid.New(), Star: 3})
	if err == nil || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a plain error, got %v", err)
	}
}

func TestRatingFindByKey_NoRow(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	rating, err := NewRatingRepository(db, zaptest.NewLogger(t)).FindByKey(context.Background(), "a", uuid.New())
	if err != nil || rating != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", rating, err)
	}
}

func TestRatingGetStats(t *testing.T) {
	movieID := uuid.New()

	db := &fakeDB{row: fakeRow{values: []any{int64(12), int64(3), true}}}
	repo := NewRatingRepository(db, zaptest.NewLogger(t))

	stats, err := repo.GetStats(context.Background(), movieID, "10.0.0.1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Sum != 12 || stats.Count != 3 || !stats.Rated || stats.MovieID != movieID {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !strings.Contains(db.sql, "BOOL_OR(identity = $2)") {
		t.Fatalf("stats must come from one statement, got:\n%s", db.sql)
	}

	stats, err = repo.GetStats(context.Background(), movieID, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Rated {
		t.Fatal("an empty identity must never count as rated")
	}
}

func TestReviewCreate_MapsErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"parent_or_movie_gone", pgError("23503"), ErrNotFound},
		{"duplicate_id", pgError("23505"), ErrConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := &fakeDB{execErr: tc.err}
			repo := NewReviewRepository(db, zaptest.NewLogger(t))

			review := &entity.Review{MovieID: uuid.New(), Name: "n", Email: "n@example.com", Text: "t"}
			review.ID = uuid.New()
			if err := repo.Create(context.Background(), review); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestReviewDeleteSubtree(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 3")}
	repo := NewReviewRepository(db, zaptest.NewLogger(t))

	id := uuid.New()
	deleted, err := repo.DeleteSubtree(context.Background(), id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted rows, got %d", deleted)
	}
	if !strings.Contains(db.sql, "WITH RECURSIVE subtree") || db.args[0] != id {
		t.Fatalf("unexpected statement %q with args %v", db.sql, db.args)
	}

	db = &fakeDB{execErr: pgError("40P01")}
	if _, err := NewReviewRepository(db, zaptest.NewLogger(t)).DeleteSubtree(context.Background(), id); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
