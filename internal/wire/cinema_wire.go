package wire

import (
	"cinema-ticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCinema mounts cinemas and their rooms
func wireCinema(r chi.Router, cinemaHandler *adaptor.CinemaHandler, roomHandler *adaptor.RoomHandler, g guards) {
	r.Route("/cinemas", func(r chi.Router) {
		r.Use(g.cached("cinemas", "rooms", "showtimes"))

		r.Get("/", cinemaHandler.List)
		r.Get("/{id}", cinemaHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(g.auth, g.admin)
			r.Post("/", cinemaHandler.Create)
			r.Put("/{id}", cinemaHandler.Update)
			r.Delete("/{id}", cinemaHandler.Delete)
		})
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Use(g.cached("rooms", "showtimes"))

		r.Get("/", roomHandler.List) // GET /api/rooms?cinema_id=1
		r.Get("/{id}", roomHandler.Get)
		r.Get("/{id}/seats", roomHandler.Seats)

		r.Group(func(r chi.Router) {
			r.Use(g.auth, g.admin)
			r.Post("/", roomHandler.Create)
			r.Put("/{id}", roomHandler.Update)
			r.Delete("/{id}", roomHandler.Delete)
		})
	})
}
