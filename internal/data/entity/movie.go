package entity

import (
	"time"
)

type MovieStatus string

const (
	MovieStatusNowShowing MovieStatus = "NOW_SHOWING"
	MovieStatusComingSoon MovieStatus = "COMING_SOON"
	MovieStatusEnded      MovieStatus = "ENDED"
)

type Movie struct {
	Base
	Title           string      `db:"title"`
	Description     *string     `db:"description"`
	Genre           *string     `db:"genre"`
	PosterURL       *string     `db:"poster_url"`
	Rating          float64     `db:"rating"`
	ReleaseDate     time.Time   `db:"release_date"`
	DurationMinutes int         `db:"duration_minutes"`
	Status          MovieStatus `db:"status"`
}

// Actor is a cast member as credited on one movie.
type Actor struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Character *string `db:"character_name"`
}
