package adaptor

import (
	"net/http"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

func (h *ShowtimeHandler) List(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.List(r.Context(), pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

func (h *ShowtimeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	showtime, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// ByMovie handles GET /api/showtimes/movie/{movieID}
func (h *ShowtimeHandler) ByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieID")
	if !ok {
		return
	}

	showtimes, err := h.service.ByMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes by movie")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// ByDate handles GET /api/showtimes/date/{date}
func (h *ShowtimeHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.ByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes by date")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

func (h *ShowtimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	showtime, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created", showtime)
}

func (h *ShowtimeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.ShowtimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	showtime, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated", showtime)
}

func (h *ShowtimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted", nil)
}
