package request

type MovieRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Description     *string `json:"description,omitempty"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	PosterURL       *string `json:"posterUrl,omitempty" validate:"omitempty,url"`
	Rating          float64 `json:"rating" validate:"min=0,max=10"`
	ReleaseDate     string  `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,min=1,max=999"`
	Status          string  `json:"status" validate:"required,oneof=NOW_SHOWING COMING_SOON ENDED"`
}
