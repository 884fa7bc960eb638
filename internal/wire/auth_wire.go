package wire

import (
	"cinema-ticket/internal/adaptor"
	"cinema-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Route("/auth", func(r chi.Router) {
		// Public, rate limited per client IP
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(g.cfg.RateLimit.AuthRequests, g.cfg.RateLimit.AuthWindow))
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Get("/me", authHandler.Me)
			r.Put("/profile", authHandler.UpdateProfile)
			r.Put("/change-password", authHandler.ChangePassword)
		})
	})
}
