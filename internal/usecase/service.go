package usecase

import (
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/event"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Movie       MovieService
	Cinema      CinemaService
	Room        RoomService
	Showtime    ShowtimeService
	Refreshment RefreshmentService
	Booking     BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher event.Publisher, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo.User, config.JWT, log),
		User:        NewUserService(repo.User, log),
		Movie:       NewMovieService(repo, log),
		Cinema:      NewCinemaService(repo.Cinema, log),
		Room:        NewRoomService(repo, log),
		Showtime:    NewShowtimeService(repo, log),
		Refreshment: NewRefreshmentService(repo.Refreshment, log),
		Booking:     NewBookingService(repo, publisher, log),
	}
}
