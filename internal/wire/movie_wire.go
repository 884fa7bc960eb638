package wire

import (
	"cinema-ticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, g guards) {
	r.Route("/movies", func(r chi.Router) {
		r.Use(g.cached("movies", "showtimes"))

		// Public
		r.Get("/", movieHandler.List)
		r.Get("/search", movieHandler.Search)
		r.Get("/{id}", movieHandler.Get)
		r.Get("/{id}/actors", movieHandler.Actors)
		r.Get("/{id}/reviews", movieHandler.Reviews)

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(g.auth, g.admin)
			r.Post("/", movieHandler.Create)
			r.Put("/{id}", movieHandler.Update)
			r.Delete("/{id}", movieHandler.Delete)
		})
	})
}
