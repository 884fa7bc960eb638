package entity

import (
	"time"
)

type Showtime struct {
	Base
	MovieID   int64     `db:"movie_id"`
	RoomID    int64     `db:"room_id"`
	CinemaID  int64     `db:"cinema_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
}

func (s *Showtime) HasStarted(now time.Time) bool {
	return !now.Before(s.StartTime)
}
