package booking

import (
	"context"
	"fmt"

	"cinema-ticket/internal/client/api"
	"cinema-ticket/internal/client/ui"
	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/dto/response"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

const FailedBookingMessage = "Failed to create booking. Please try again."

// BookingCreator is the subset of the REST client submission needs.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	InvalidateQueries(prefix string)
}

// Submitter posts bookings. It sends no idempotency key, so retrying
// after a timeout may create a second booking.
type Submitter struct {
	api    BookingCreator
	nav    ui.Navigator
	notify ui.Notifier
	log    *zap.Logger
}

func NewSubmitter(creator BookingCreator, nav ui.Navigator, notify ui.Notifier, log *zap.Logger) *Submitter {
	return &Submitter{
		api:    creator,
		nav:    nav,
		notify: notify,
		log:    log.With(zap.String("component", "booking-submitter")),
	}
}

// Submit validates locally, then issues exactly one create request.
// Local rejections return ErrNoSeatsSelected or *ValidationError without
// a toast; server failures toast and return *SubmitError.
func (s *Submitter) Submit(ctx context.Context, showtimeID int64, seatIDs []int64, refreshments []RefreshmentLine) (*response.BookingResponse, error) {
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}

	req := &request.CreateBookingRequest{
		ShowtimeID: showtimeID,
		SeatIDs:    seatIDs,
	}
	for _, l := range refreshments {
		req.Refreshments = append(req.Refreshments, request.RefreshmentRequest{ID: l.ID, Quantity: l.Quantity})
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	booking, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		msg := api.ErrorMessage(err, FailedBookingMessage)
		if api.IsNetwork(err) {
			msg = api.NetworkMessage
		}
		s.log.Warn("Booking failed",
			zap.Int64("showtime_id", showtimeID),
			zap.Int64s("seat_ids", seatIDs),
			zap.Error(err),
		)
		s.notify.Error(msg)
		return nil, &SubmitError{Message: msg, Err: err}
	}

	s.api.InvalidateQueries(api.QueryMyBookings)
	s.log.Info("Booking created", zap.Int64("booking_id", booking.ID), zap.String("code", booking.BookingCode))
	s.notify.Success(fmt.Sprintf("Booking %s created", booking.BookingCode))
	s.nav.Navigate(ui.RouteBookingHistory)

	return booking, nil
}
