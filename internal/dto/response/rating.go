package response

import (
	"time"

	"movie-feedback/internal/data/entity"
)

type RatingResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	Identity  string    `json:"identity"`
	Star      int       `json:"star"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary is the per-request aggregate of a movie's ratings.
type RatingSummary struct {
	MiddleStar int  `json:"middle_star"`
	RatingUser bool `json:"rating_user"`
}

func RatingToResponse(rating *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID.String(),
		MovieID:   rating.MovieID.String(),
		Identity:  string(rating.Identity),
		Star:      rating.Star,
		UpdatedAt: rating.UpdatedAt,
	}
}
