package response

import (
	"movie-feedback/internal/data/entity"
)

type MovieListItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Tagline    string  `json:"tagline"`
	Category   *string `json:"category"`
	RatingUser bool    `json:"rating_user"`
	MiddleStar int     `json:"middle_star"`
}

// MovieDetailResponse carries every public movie attribute; draft is never rendered.
type MovieDetailResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Tagline       string           `json:"tagline"`
	Description   string           `json:"description"`
	Poster        *string          `json:"poster,omitempty"`
	Year          int              `json:"year"`
	Country       string           `json:"country"`
	WorldPremiere *string          `json:"world_premiere,omitempty"`
	Budget        int64            `json:"budget"`
	FeesInUSA     int64            `json:"fees_in_usa"`
	FeesInWorld   int64            `json:"fees_in_world"`
	URL           string           `json:"url"`
	Category      *string          `json:"category"`
	Directors     []CreditResponse `json:"directors"`
	Actors        []CreditResponse `json:"actors"`
	Genres        []string         `json:"genres"`
	MiddleStar    int              `json:"middle_star"`
	RatingUser    bool             `json:"rating_user"`
	Reviews       []ReviewNode     `json:"reviews"`
}

func MovieToListItem(movie *entity.Movie, summary RatingSummary) MovieListItem {
	item := MovieListItem{
		ID:         movie.ID.String(),
		Title:      movie.Title,
		Tagline:    movie.Tagline,
		RatingUser: summary.RatingUser,
		MiddleStar: summary.MiddleStar,
	}
	if movie.CategoryID != nil {
		category := movie.CategoryID.String()
		item.Category = &category
	}
	return item
}

// MovieToDetailResponse leaves Category nil when categoryName is empty.
func MovieToDetailResponse(
	movie *entity.Movie,
	categoryName string,
	directors, actors []*entity.Actor,
	genres []*entity.Genre,
	summary RatingSummary,
	reviews []ReviewNode,
) MovieDetailResponse {
	resp := MovieDetailResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Tagline:     movie.Tagline,
		Description: movie.Description,
		Poster:      movie.PosterURL,
		Year:        movie.Year,
		Country:     movie.Country,
		Budget:      movie.Budget,
		FeesInUSA:   movie.FeesInUSA,
		FeesInWorld: movie.FeesInWorld,
		URL:         movie.URL,
		Directors:   CreditsToResponse(directors, entity.CreditDirector),
		Actors:      CreditsToResponse(actors, entity.CreditActor),
		Genres:      make([]string, 0, len(genres)),
		MiddleStar:  summary.MiddleStar,
		RatingUser:  summary.RatingUser,
		Reviews:     reviews,
	}

	if movie.WorldPremiere != nil {
		premiere := movie.WorldPremiere.Format("2006-01-02")
		resp.WorldPremiere = &premiere
	}
	if categoryName != "" {
		resp.Category = &categoryName
	}
	for _, genre := range genres {
		resp.Genres = append(resp.Genres, genre.Name)
	}
	if resp.Reviews == nil {
		resp.Reviews = []ReviewNode{}
	}
	return resp
}
