package response

import "movie-feedback/internal/data/entity"

type ActorResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Age   int     `json:"age"`
	Image *string `json:"image,omitempty"`
}

type ActorDetailResponse struct {
	ActorResponse
	Description string `json:"description"`
}

// CreditResponse is a director or actor as listed on a movie.
type CreditResponse struct {
	ActorResponse
	Role string `json:"role"`
	Bio  string `json:"bio"`
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:    actor.ID.String(),
		Name:  actor.Name,
		Age:   actor.Age,
		Image: actor.ImageURL,
	}
}

func ActorToDetailResponse(actor *entity.Actor) ActorDetailResponse {
	return ActorDetailResponse{
		ActorResponse: ActorToResponse(actor),
		Description:   actor.Description,
	}
}

func ActorsToResponse(actors []*entity.Actor) []ActorResponse {
	resp := make([]ActorResponse, 0, len(actors))
	for _, actor := range actors {
		resp = append(resp, ActorToResponse(actor))
	}
	return resp
}

func CreditsToResponse(actors []*entity.Actor, role entity.CreditRole) []CreditResponse {
	resp := make([]CreditResponse, 0, len(actors))
	for _, actor := range actors {
		resp = append(resp, CreditResponse{
			ActorResponse: ActorToResponse(actor),
			Role:          string(role),
			Bio:           actor.Description,
		})
	}
	return resp
}
