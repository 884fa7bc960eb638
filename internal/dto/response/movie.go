package response

import (
	"time"

	"cinema-ticket/internal/data/entity"
)

type MovieResponse struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	Genre           *string            `json:"genre,omitempty"`
	PosterURL       *string            `json:"posterUrl,omitempty"`
	Rating          float64            `json:"rating"`
	ReleaseDate     string             `json:"releaseDate"`
	DurationMinutes int                `json:"durationMinutes"`
	Status          entity.MovieStatus `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type ActorResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Character *string `json:"character,omitempty"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:              movie.ID,
		Title:           movie.Title,
		Description:     movie.Description,
		Genre:           movie.Genre,
		PosterURL:       movie.PosterURL,
		Rating:          movie.Rating,
		ReleaseDate:     movie.ReleaseDate.Format("2006-01-02"),
		DurationMinutes: movie.DurationMinutes,
		Status:          movie.Status,
		CreatedAt:       movie.CreatedAt,
		UpdatedAt:       movie.UpdatedAt,
	}
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID,
		Name:      actor.Name,
		Character: actor.Character,
	}
}
