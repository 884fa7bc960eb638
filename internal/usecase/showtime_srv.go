package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	List(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	Get(ctx context.Context, id int64) (*response.ShowtimeResponse, error)
	ByMovie(ctx context.Context, movieID int64) ([]response.ShowtimeResponse, error)
	// ByDate lists showtimes starting on the given yyyy-MM-dd day
	ByDate(ctx context.Context, date string) ([]response.ShowtimeResponse, error)

	// Admin
	Create(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	Update(ctx context.Context, id int64, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
		now:  time.Now,
	}
}

func (s *showtimeService) List(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	return response.NewPaginatedResponse(showtimesToResponse(showtimes), page.Page, page.Limit(), total), nil
}

func (s *showtimeService) Get(ctx context.Context, id int64) (*response.ShowtimeResponse, error) {
	showtime, err := findShowtime(ctx, s.repo.Showtime, id)
	if err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) ByMovie(ctx context.Context, movieID int64) ([]response.ShowtimeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "movie %d not found", movieID)
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, movieID, s.now())
	if err != nil {
		return nil, fmt.Errorf("showtimes of movie %d: %w", movieID, err)
	}

	return showtimesToResponse(showtimes), nil
}

func (s *showtimeService) ByDate(ctx context.Context, date string) ([]response.ShowtimeResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, newError(ErrInvalidInput, "invalid date %q, expected yyyy-MM-dd", date)
	}

	showtimes, err := s.repo.Showtime.FindBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("showtimes on %s: %w", date, err)
	}

	return showtimesToResponse(showtimes), nil
}

func (s *showtimeService) Create(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	showtime := &entity.Showtime{Base: entity.Base{CreatedAt: now, UpdatedAt: now}}
	if err := s.apply(ctx, showtime, req); err != nil {
		return nil, err
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.Int64("room_id", showtime.RoomID),
		zap.Time("start_time", showtime.StartTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) Update(ctx context.Context, id int64, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	showtime, err := findShowtime(ctx, s.repo.Showtime, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, showtime, req); err != nil {
		return nil, err
	}
	showtime.UpdatedAt = s.now()

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "showtime %d not found", id)
		}
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Showtime.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "showtime %d not found", id)
	}
	return err
}

// apply checks references and the schedule, then copies req into showtime.
func (s *showtimeService) apply(ctx context.Context, showtime *entity.Showtime, req *request.ShowtimeRequest) error {
	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return newError(ErrNotFound, "movie %d not found", req.MovieID)
	}

	room, err := findRoom(ctx, s.repo.Room, req.RoomID)
	if err != nil {
		return err
	}

	end := req.StartTime.Add(time.Duration(movie.DurationMinutes) * time.Minute)
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if !end.After(req.StartTime) {
		return newError(ErrInvalidInput, "end time must be after start time")
	}

	overlap, err := s.repo.Showtime.HasOverlap(ctx, room.ID, req.StartTime, end, showtime.ID)
	if err != nil {
		return err
	}
	if overlap {
		return newError(ErrConflict, "room %s already has a showtime between %s and %s",
			room.Name, req.StartTime.Format("15:04"), end.Format("15:04"))
	}

	showtime.MovieID = movie.ID
	showtime.RoomID = room.ID
	showtime.CinemaID = room.CinemaID
	showtime.StartTime = req.StartTime
	showtime.EndTime = end
	showtime.Price = req.Price
	return nil
}

func findShowtime(ctx context.Context, showtimes repository.ShowtimeRepository, id int64) (*entity.Showtime, error) {
	showtime, err := showtimes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, newError(ErrNotFound, "showtime %d not found", id)
	}
	return showtime, nil
}

func showtimesToResponse(showtimes []*entity.Showtime) []response.ShowtimeResponse {
	out := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, st := range showtimes {
		out = append(out, response.ShowtimeToResponse(st))
	}
	return out
}
