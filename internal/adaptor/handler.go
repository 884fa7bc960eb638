package adaptor

import (
	"errors"
	"net/http"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Movie       *MovieHandler
	Cinema      *CinemaHandler
	Room        *RoomHandler
	Showtime    *ShowtimeHandler
	Refreshment *RefreshmentHandler
	Booking     *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Movie:       NewMovieHandler(service.Movie, log),
		Cinema:      NewCinemaHandler(service.Cinema, log),
		Room:        NewRoomHandler(service.Room, log),
		Showtime:    NewShowtimeHandler(service.Showtime, log),
		Refreshment: NewRefreshmentHandler(service.Refreshment, log),
		Booking:     NewBookingHandler(service.Booking, log),
	}
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter, answering 400 when malformed
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func pagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}
}

// handleServiceError maps usecase error kinds to HTTP statuses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		log.Warn(operation+" validation failed", zap.Any("errors", verr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials")
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// currentUser reads the authenticated caller set by the Auth middleware
func currentUser(w http.ResponseWriter, r *http.Request) (usecase.Viewer, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Viewer{}, false
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Viewer{UserID: userID, Admin: role == "ADMIN"}, true
}
