package request

type CreateReviewRequest struct {
	MovieID  string  `json:"movie_id" validate:"required,uuid"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Text     string  `json:"text" validate:"required,min=1,max=5000"`
}
