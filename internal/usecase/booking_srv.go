package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"cinema-ticket/internal/data/entity"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/internal/event"
	"cinema-ticket/pkg/metrics"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

// Viewer is the caller on whose behalf bookings are read.
type Viewer struct {
	UserID int64
	Admin  bool
}

type BookingService interface {
	Create(ctx context.Context, userID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// List returns the viewer's own bookings, or everyone's for admins
	List(ctx context.Context, viewer Viewer, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Get(ctx context.Context, viewer Viewer, id int64) (*response.BookingResponse, error)
	BookedSeats(ctx context.Context, showtimeID int64) (*response.BookedSeatsResponse, error)

	// Admin
	Confirm(ctx context.Context, id int64) (*response.BookingResponse, error)
	Cancel(ctx context.Context, id int64) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewBookingService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) BookingService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, userID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	now := s.now()

	showtime, err := findShowtime(ctx, s.repo.Showtime, req.ShowtimeID)
	if err != nil {
		return nil, err
	}
	if showtime.HasStarted(now) {
		return nil, newError(ErrInvalidInput, "showtime %d has already started", showtime.ID)
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, showtime.RoomID, req.SeatIDs)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	if missing := missingIDs(req.SeatIDs, seats, func(s *entity.Seat) int64 { return s.ID }); len(missing) > 0 {
		return nil, newError(ErrInvalidInput, "seats %v do not belong to the showtime's room", missing)
	}

	items, refreshmentTotal, err := s.refreshmentLines(ctx, req.Refreshments)
	if err != nil {
		return nil, err
	}

	tickets := make([]*entity.Ticket, 0, len(seats))
	for _, seat := range seats {
		tickets = append(tickets, &entity.Ticket{
			SeatID:    seat.ID,
			SeatLabel: seat.Label(),
			Price:     showtime.Price,
		})
	}

	booking := &entity.Booking{
		Base:        entity.Base{CreatedAt: now, UpdatedAt: now},
		BookingCode: utils.GenerateBookingCode(now),
		UserID:      userID,
		ShowtimeID:  showtime.ID,
		TotalPrice:  roundCents(showtime.Price*float64(len(tickets)) + refreshmentTotal),
		Status:      entity.BookingStatusPending,
	}

	if err := s.insertBooking(ctx, booking, tickets, items); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			metrics.BookingConflicts.Inc()
			s.log.Warn("Seats already booked",
				zap.Int64("showtime_id", showtime.ID),
				zap.Int64s("seat_ids", req.SeatIDs),
			)
			return nil, newError(ErrConflict, "one or more selected seats are already booked")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsTotal.WithLabelValues(string(booking.Status)).Inc()
	metrics.BookedSeats.Add(float64(len(tickets)))

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("booking_code", booking.BookingCode),
		zap.Int64("user_id", userID),
		zap.Int("seat_count", len(tickets)),
		zap.Float64("total_price", booking.TotalPrice),
	)

	s.publish(ctx, event.TypeBookingCreated, booking, req.SeatIDs)

	resp := response.BookingToResponse(booking, tickets, items)
	s.attachSnapshots(ctx, &resp, booking, showtime)
	return &resp, nil
}

// codeAttempts bounds how many booking codes Create tries before giving up
const codeAttempts = 3

// insertBooking stores the booking, drawing a fresh code whenever the
// generated one is already taken.
func (s *bookingService) insertBooking(ctx context.Context, booking *entity.Booking, tickets []*entity.Ticket, items []*entity.BookingRefreshment) error {
	var err error
	for attempt := 1; attempt <= codeAttempts; attempt++ {
		err = s.repo.Booking.CreateWithItems(ctx, booking, tickets, items)
		if !errors.Is(err, repository.ErrDuplicateCode) {
			return err
		}
		s.log.Warn("Booking code collision, regenerating",
			zap.String("booking_code", booking.BookingCode),
			zap.Int("attempt", attempt),
		)
		booking.BookingCode = utils.GenerateBookingCode(s.now())
	}
	return err
}

// refreshmentLines prices the requested refreshments at their current
// catalogue price.
func (s *bookingService) refreshmentLines(ctx context.Context, reqs []request.RefreshmentRequest) ([]*entity.BookingRefreshment, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, nil
	}

	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}

	found, err := s.repo.Refreshment.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load refreshments: %w", err)
	}
	if missing := missingIDs(ids, found, func(r *entity.Refreshment) int64 { return r.ID }); len(missing) > 0 {
		return nil, 0, newError(ErrInvalidInput, "refreshments %v are not available", missing)
	}

	byID := make(map[int64]*entity.Refreshment, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	var total float64
	lines := make([]*entity.BookingRefreshment, 0, len(reqs))
	for _, r := range reqs {
		item := byID[r.ID]
		lines = append(lines, &entity.BookingRefreshment{
			RefreshmentID: item.ID,
			Name:          item.Name,
			Quantity:      r.Quantity,
			UnitPrice:     item.Price,
		})
		total += item.Price * float64(r.Quantity)
	}

	return lines, total, nil
}

func (s *bookingService) List(ctx context.Context, viewer Viewer, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	var owner *int64
	if !viewer.Admin {
		owner = &viewer.UserID
	}

	bookings, err := s.repo.Booking.FindAll(ctx, page.Limit(), page.Offset(), owner)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp, err := s.buildResponse(ctx, b)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *bookingService) Get(ctx context.Context, viewer Viewer, id int64) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.Admin && booking.UserID != viewer.UserID {
		s.log.Warn("Booking access denied",
			zap.Int64("booking_id", id),
			zap.Int64("user_id", viewer.UserID),
		)
		return nil, newError(ErrForbidden, "booking %d belongs to another user", id)
	}

	return s.buildResponse(ctx, booking)
}

func (s *bookingService) BookedSeats(ctx context.Context, showtimeID int64) (*response.BookedSeatsResponse, error) {
	if _, err := findShowtime(ctx, s.repo.Showtime, showtimeID); err != nil {
		return nil, err
	}

	ids, err := s.repo.Booking.FindBookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("booked seats: %w", err)
	}

	return &response.BookedSeatsResponse{ShowtimeID: showtimeID, SeatIDs: ids}, nil
}

func (s *bookingService) Confirm(ctx context.Context, id int64) (*response.BookingResponse, error) {
	return s.transition(ctx, id, entity.BookingStatusPaid)
}

func (s *bookingService) Cancel(ctx context.Context, id int64) (*response.BookingResponse, error) {
	return s.transition(ctx, id, entity.BookingStatusCancelled)
}

func (s *bookingService) transition(ctx context.Context, id int64, to entity.BookingStatus) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(to) {
		return nil, newError(ErrConflict, "booking %s is %s and cannot become %s", booking.BookingCode, booking.Status, to)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, booking.Status, to); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newError(ErrConflict, "booking %s was changed concurrently", booking.BookingCode)
		}
		return nil, err
	}

	booking.Status = to
	booking.UpdatedAt = s.now()
	metrics.BookingsTotal.WithLabelValues(string(to)).Inc()

	s.publish(ctx, event.TypeBookingStatusChanged, booking, nil)

	return s.buildResponse(ctx, booking)
}

func (s *bookingService) findBooking(ctx context.Context, id int64) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "booking %d not found", id)
	}
	return booking, nil
}

func (s *bookingService) buildResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	tickets, err := s.repo.Booking.FindTickets(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Booking.FindRefreshments(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, tickets, items)
	s.attachSnapshots(ctx, &resp, booking, showtime)
	return &resp, nil
}

// attachSnapshots fills the showtime and user views. Lookup failures only
// drop the snapshot.
func (s *bookingService) attachSnapshots(ctx context.Context, resp *response.BookingResponse, booking *entity.Booking, showtime *entity.Showtime) {
	if showtime != nil {
		snap := &response.BookingShowtimeResponse{ShowtimeResponse: response.ShowtimeToResponse(showtime)}
		if movie, _ := s.repo.Movie.FindByID(ctx, showtime.MovieID); movie != nil {
			snap.MovieTitle = movie.Title
		}
		if cinema, _ := s.repo.Cinema.FindByID(ctx, showtime.CinemaID); cinema != nil {
			snap.CinemaName = cinema.Name
		}
		if room, _ := s.repo.Room.FindByID(ctx, showtime.RoomID); room != nil {
			snap.RoomName = room.Name
		}
		resp.Showtime = snap
	}

	if user, _ := s.repo.User.FindByID(ctx, booking.UserID); user != nil {
		resp.User = &response.BookingUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *entity.Booking, seatIDs []int64) {
	evt := event.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		BookingCode: booking.BookingCode,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		Status:      string(booking.Status),
		SeatIDs:     seatIDs,
		TotalPrice:  booking.TotalPrice,
		OccurredAt:  s.now().UTC(),
	}

	if err := s.publisher.PublishBooking(ctx, evt); err != nil {
		s.log.Warn("Booking event not published",
			zap.Error(err),
			zap.String("type", eventType),
			zap.Int64("booking_id", booking.ID),
		)
	}
}

// missingIDs returns the ids that have no match in found, in request order.
func missingIDs[T any](ids []int64, found []T, idOf func(T) int64) []int64 {
	have := make([]int64, 0, len(found))
	for _, f := range found {
		have = append(have, idOf(f))
	}

	var missing []int64
	for _, id := range ids {
		if !slices.Contains(have, id) {
			missing = append(missing, id)
		}
	}
	return missing
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
