package entity

import (
	"github.com/google/uuid"
)

// Identity is an opaque per-requester key supplied by the identity middleware.
type Identity string

const (
	MinStar = 1
	MaxStar = 5
)

// Rating is unique per (Identity, MovieID).
type Rating struct {
	BaseNoDelete
	Identity Identity  `db:"identity"`
	MovieID  uuid.UUID `db:"movie_id"`
	Star     int       `db:"star"`
}

// RatingStats is the raw aggregate a middle star is derived from.
type RatingStats struct {
	MovieID uuid.UUID
	Sum     int64
	Count   int64
	Rated   bool // the requesting identity has a row
}
