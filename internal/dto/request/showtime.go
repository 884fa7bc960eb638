package request

import "time"

type ShowtimeRequest struct {
	MovieID   int64     `json:"movieId" validate:"required,gt=0"`
	RoomID    int64     `json:"roomId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	// EndTime defaults to start time plus the movie duration
	EndTime *time.Time `json:"endTime,omitempty" validate:"omitempty,gtfield=StartTime"`
	Price   float64    `json:"price" validate:"required,gt=0"`
}
