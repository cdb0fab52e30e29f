package entity

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title         string     `db:"title"`
	Tagline       string     `db:"tagline"`
	Description   string     `db:"description"`
	PosterURL     *string    `db:"poster_url"`
	Year          int        `db:"year"`
	Country       string     `db:"country"`
	WorldPremiere *time.Time `db:"world_premiere"`
	Budget        int64      `db:"budget"`
	FeesInUSA     int64      `db:"fees_in_usa"`
	FeesInWorld   int64      `db:"fees_in_world"`
	CategoryID    *uuid.UUID `db:"category_id"`
	URL           string     `db:"url"`
	Draft         bool       `db:"draft"` // never rendered
}

// Published reports whether the movie may be shown or rated.
func (m *Movie) Published() bool {
	return m != nil && !m.Draft && m.DeletedAt == nil
}
