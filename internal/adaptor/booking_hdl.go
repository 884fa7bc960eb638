package adaptor

import (
	"net/http"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.Create(r.Context(), viewer.UserID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// List handles GET /api/bookings. Admins see every booking.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := currentUser(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.List(r.Context(), viewer, pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.Get(r.Context(), viewer, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// BookedSeats handles GET /api/bookings/showtime/{showtimeID}/seats
func (h *BookingHandler) BookedSeats(w http.ResponseWriter, r *http.Request) {
	showtimeID, ok := pathID(w, r, "showtimeID")
	if !ok {
		return
	}

	seats, err := h.service.BookedSeats(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booked seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// Confirm handles PUT /api/bookings/{id}/confirm (admin)
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed", booking)
}

// Cancel handles PUT /api/bookings/{id}/cancel (admin)
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}
