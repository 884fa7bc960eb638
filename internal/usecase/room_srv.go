package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"

	"go.uber.org/zap"
)

type RoomService interface {
	List(ctx context.Context, page *request.PaginatedRequest, cinemaID int64) (*response.PaginatedResponse[response.RoomResponse], error)
	Get(ctx context.Context, id int64) (*response.RoomResponse, error)
	Seats(ctx context.Context, roomID int64) ([]response.SeatResponse, error)
	Create(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	Update(ctx context.Context, id int64, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) List(ctx context.Context, page *request.PaginatedRequest, cinemaID int64) (*response.PaginatedResponse[response.RoomResponse], error) {
	var filter *int64
	if cinemaID > 0 {
		filter = &cinemaID
	}

	rooms, err := s.repo.Room.FindAll(ctx, page.Limit(), page.Offset(), filter)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	total, err := s.repo.Room.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	items := make([]response.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, response.RoomToResponse(r))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *roomService) Get(ctx context.Context, id int64) (*response.RoomResponse, error) {
	room, err := findRoom(ctx, s.repo.Room, id)
	if err != nil {
		return nil, err
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) Seats(ctx context.Context, roomID int64) ([]response.SeatResponse, error) {
	if _, err := findRoom(ctx, s.repo.Room, roomID); err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("room seats: %w", err)
	}

	out := make([]response.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		out = append(out, response.SeatToResponse(seat))
	}
	return out, nil
}

func (s *roomService) Create(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := findCinema(ctx, s.repo.Cinema, req.CinemaID); err != nil {
		return nil, err
	}

	now := time.Now()
	room := &entity.Room{
		Base:        entity.Base{CreatedAt: now, UpdatedAt: now},
		CinemaID:    req.CinemaID,
		Name:        req.Name,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	}

	seats := GenerateSeatGrid(req.Rows, req.SeatsPerRow, req.VIPRows)
	if err := s.repo.Room.Create(ctx, room, seats); err != nil {
		return nil, err
	}

	s.log.Info("Room created",
		zap.Int64("room_id", room.ID),
		zap.Int64("cinema_id", room.CinemaID),
		zap.Int("seats", len(seats)),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) Update(ctx context.Context, id int64, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	room, err := findRoom(ctx, s.repo.Room, id)
	if err != nil {
		return nil, err
	}

	room.Name = req.Name
	room.UpdatedAt = time.Now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "room %d not found", id)
		}
		return nil, err
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Room.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "room %d not found", id)
	}
	return err
}

func findRoom(ctx context.Context, rooms repository.RoomRepository, id int64) (*entity.Room, error) {
	room, err := rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, newError(ErrNotFound, "room %d not found", id)
	}
	return room, nil
}

// GenerateSeatGrid lays out rows A, B, C... each holding seatsPerRow seats
// numbered from 1. Rows listed in vipRows get VIP seats.
func GenerateSeatGrid(rows, seatsPerRow int, vipRows []string) []*entity.Seat {
	seats := make([]*entity.Seat, 0, rows*seatsPerRow)
	for r := 0; r < rows; r++ {
		label := string(rune('A' + r))

		seatType := entity.SeatTypeStandard
		if slices.Contains(vipRows, label) {
			seatType = entity.SeatTypeVIP
		}

		for c := 1; c <= seatsPerRow; c++ {
			seats = append(seats, &entity.Seat{Row: label, Col: c, Type: seatType})
		}
	}
	return seats
}
