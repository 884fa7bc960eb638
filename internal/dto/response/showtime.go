package response

import (
	"time"

	"cinema-ticket/internal/data/entity"
)

type ShowtimeResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	RoomID    int64     `json:"roomId"`
	CinemaID  int64     `json:"cinemaId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Price     float64   `json:"price"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID,
		MovieID:   showtime.MovieID,
		RoomID:    showtime.RoomID,
		CinemaID:  showtime.CinemaID,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
	}
}
