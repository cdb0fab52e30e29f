package entity

type CreditRole string

const (
	CreditDirector CreditRole = "director"
	CreditActor    CreditRole = "actor"
)

// Actor covers both actors and directors; the role lives on the movie credit.
type Actor struct {
	BaseSimple
	Name        string  `db:"name"`
	Age         int     `db:"age"`
	Description string  `db:"description"`
	ImageURL    *string `db:"image_url"`
}
