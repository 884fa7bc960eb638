package repository

import (
	"cinema-ticket/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Movie       MovieRepository
	Review      ReviewRepository
	Cinema      CinemaRepository
	Room        RoomRepository
	Seat        SeatRepository
	Showtime    ShowtimeRepository
	Refreshment RefreshmentRepository
	Booking     BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Review:      NewReviewRepository(db, log),
		Cinema:      NewCinemaRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		Refreshment: NewRefreshmentRepository(db, log),
		Booking:     NewBookingRepository(db, log),
	}
}
