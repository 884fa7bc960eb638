package wire

import (
	"cinema-ticket/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser mounts admin user management
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	r.With(g.auth, g.admin).Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List) // GET /api/users?page=1&per_page=10
		r.Post("/", userHandler.Create)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})
}
