package wire

import (
	"cinema-ticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, g guards) {
	r.Route("/showtimes", func(r chi.Router) {
		// upcoming only, filtered against the current time
		r.Get("/movie/{movieID}", showtimeHandler.ByMovie)

		r.Group(func(r chi.Router) {
			r.Use(g.cached("showtimes"))

			r.Get("/", showtimeHandler.List)
			r.Get("/{id}", showtimeHandler.Get)
			r.Get("/date/{date}", showtimeHandler.ByDate) // yyyy-MM-dd

			r.Group(func(r chi.Router) {
				r.Use(g.auth, g.admin)
				r.Post("/", showtimeHandler.Create)
				r.Put("/{id}", showtimeHandler.Update)
				r.Delete("/{id}", showtimeHandler.Delete)
			})
		})
	})
}
