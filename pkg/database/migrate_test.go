package database

import (
	"strings"
	"testing"

	"movie-feedback/pkg/utils"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migrations) == 0 || migrations[0].version != "0001_init" {
		t.Fatalf("unexpected migrations %+v", migrations)
	}

	schema := migrations[0].sql
	for _, want := range []string{
		"UNIQUE (identity, movie_id)",
		"CHECK (star BETWEEN 1 AND 5)",
		"REFERENCES reviews (id, movie_id) ON DELETE CASCADE",
	} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema missing %q", want)
		}
	}
}

func TestConnString(t *testing.T) {
	got := ConnString(utils.DatabaseConfig{
		User: "u", Password: "p", Name: "movies", Host: "db", Port: "5433",
	})
	want := "user=u password=p dbname=movies host=db port=5433 sslmode=disable"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
