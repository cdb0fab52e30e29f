package response

import (
	"time"

	"movie-feedback/internal/data/entity"
)

// ReviewNode is one rendered review with its replies nested in Children.
// Children is never nil so it always encodes as an array.
type ReviewNode struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Text     string       `json:"text"`
	Children []ReviewNode `json:"children"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewDeleteResponse struct {
	ID      string `json:"id"`
	Deleted int64  `json:"deleted"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        review.ID.String(),
		MovieID:   review.MovieID.String(),
		Name:      review.Name,
		Email:     review.Email,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
	}
	if review.ParentID != nil {
		parent := review.ParentID.String()
		resp.ParentID = &parent
	}
	return resp
}
