package wire

import (
	"cinema-ticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireBooking mounts bookings and the refreshment catalogue offered
// during checkout. Booking responses depend on the caller and booked
// seats must be fresh, so the bookings group is never cached.
func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, refreshmentHandler *adaptor.RefreshmentHandler, g guards) {
	r.With(g.cached("refreshments")).Get("/refreshments", refreshmentHandler.List)

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/showtime/{showtimeID}/seats", bookingHandler.BookedSeats)

		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Post("/", bookingHandler.Create)
			r.Get("/", bookingHandler.List)
			r.Get("/{id}", bookingHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(g.auth, g.admin)
			r.Put("/{id}/confirm", bookingHandler.Confirm)
			r.Put("/{id}/cancel", bookingHandler.Cancel)
		})
	})
}
