package entity

import (
	"github.com/google/uuid"
)

// Review is one node of a movie's review forest. ParentID is nil for root reviews
// and otherwise points at a review of the same movie.
type Review struct {
	BaseSimple
	MovieID  uuid.UUID  `db:"movie_id"`
	ParentID *uuid.UUID `db:"parent_id"`
	Email    string     `db:"email"`
	Name     string     `db:"name"`
	Text     string     `db:"text"`
}

func (r *Review) IsRoot() bool {
	return r.ParentID == nil
}
