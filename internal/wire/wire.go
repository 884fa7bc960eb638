package wire

import (
	"net/http"

	"cinema-ticket/internal/adaptor"
	"cinema-ticket/internal/data/repository"
	"cinema-ticket/internal/event"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/cache"
	"cinema-ticket/pkg/middleware"
	"cinema-ticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP router
type App struct {
	Router *chi.Mux
}

// guards bundles the middleware shared by the per-resource route files
type guards struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
	store cache.Store
	cfg   *utils.Config
	log   *zap.Logger
}

// cached returns the response cache middleware for one route group.
// Mutations in the group also drop the dependent groups.
func (g guards) cached(group string, dependents ...string) func(http.Handler) http.Handler {
	return middleware.ResponseCache(g.store, group, g.cfg.Redis.CacheTTL, g.log, dependents...)
}

// Wiring builds services, handlers and routes. store may be nil (no
// response cache) and publisher may be nil (events dropped).
func Wiring(repo *repository.Repository, config *utils.Config, store cache.Store, publisher event.Publisher, logger *zap.Logger) *App {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}

	service := usecase.NewService(repo, config, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, config, store, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, store cache.Store, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics)

	g := guards{
		auth:  middleware.Auth(config.JWT.Secret, logger),
		admin: middleware.Admin(logger),
		store: store,
		cfg:   config,
		log:   logger,
	}

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth, g)
		wireUser(r, handler.User, g)
		wireMovie(r, handler.Movie, g)
		wireCinema(r, handler.Cinema, handler.Room, g)
		wireShowtime(r, handler.Showtime, g)
		wireBooking(r, handler.Booking, handler.Refreshment, g)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
