package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type CinemaService interface {
	List(ctx context.Context, page *request.PaginatedRequest, city string) (*response.PaginatedResponse[response.CinemaResponse], error)
	Get(ctx context.Context, id int64) (*response.CinemaResponse, error)
	Create(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error)
	Update(ctx context.Context, id int64, req *request.CinemaRequest) (*response.CinemaResponse, error)
	Delete(ctx context.Context, id int64) error
}

type cinemaService struct {
	cinemas repository.CinemaRepository
	log     *zap.Logger
}

func NewCinemaService(cinemas repository.CinemaRepository, log *zap.Logger) CinemaService {
	return &cinemaService{
		cinemas: cinemas,
		log:     log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) List(ctx context.Context, page *request.PaginatedRequest, city string) (*response.PaginatedResponse[response.CinemaResponse], error) {
	var filter *string
	if city = strings.TrimSpace(city); city != "" {
		filter = &city
	}

	cinemas, err := s.cinemas.FindAll(ctx, page.Limit(), page.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list cinemas: %w", err)
	}

	total, err := s.cinemas.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count cinemas: %w", err)
	}

	items := make([]response.CinemaResponse, 0, len(cinemas))
	for _, c := range cinemas {
		items = append(items, response.CinemaToResponse(c))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *cinemaService) Get(ctx context.Context, id int64) (*response.CinemaResponse, error) {
	cinema, err := findCinema(ctx, s.cinemas, id)
	if err != nil {
		return nil, err
	}

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) Create(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	cinema := &entity.Cinema{
		Base:    entity.Base{CreatedAt: now, UpdatedAt: now},
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	}

	if err := s.cinemas.Create(ctx, cinema); err != nil {
		return nil, err
	}

	s.log.Info("Cinema created", zap.Int64("cinema_id", cinema.ID), zap.String("name", cinema.Name))

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) Update(ctx context.Context, id int64, req *request.CinemaRequest) (*response.CinemaResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	cinema, err := findCinema(ctx, s.cinemas, id)
	if err != nil {
		return nil, err
	}

	cinema.Name = req.Name
	cinema.Address = req.Address
	cinema.City = req.City
	cinema.Phone = req.Phone
	cinema.UpdatedAt = time.Now()

	if err := s.cinemas.Update(ctx, cinema); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "cinema %d not found", id)
		}
		return nil, err
	}

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) Delete(ctx context.Context, id int64) error {
	err := s.cinemas.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "cinema %d not found", id)
	}
	return err
}

func findCinema(ctx context.Context, cinemas repository.CinemaRepository, id int64) (*entity.Cinema, error) {
	cinema, err := cinemas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cinema == nil {
		return nil, newError(ErrNotFound, "cinema %d not found", id)
	}
	return cinema, nil
}
