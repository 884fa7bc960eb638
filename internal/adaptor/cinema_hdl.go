package adaptor

import (
	"net/http"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type CinemaHandler struct {
	service usecase.CinemaService
	log     *zap.Logger
}

func NewCinemaHandler(service usecase.CinemaService, log *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		service: service,
		log:     log.With(zap.String("handler", "cinema")),
	}
}

// List handles GET /api/cinemas?city=
func (h *CinemaHandler) List(w http.ResponseWriter, r *http.Request) {
	cinemas, err := h.service.List(r.Context(), pagination(r), r.URL.Query().Get("city"))
	if err != nil {
		handleServiceError(w, h.log, err, "list cinemas")
		return
	}

	utils.ResponseSuccess(w, "success", cinemas)
}

func (h *CinemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cinema, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get cinema")
		return
	}

	utils.ResponseSuccess(w, "success", cinema)
}

func (h *CinemaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CinemaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cinema, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create cinema")
		return
	}

	utils.ResponseCreated(w, "Cinema created", cinema)
}

func (h *CinemaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CinemaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cinema, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cinema")
		return
	}

	utils.ResponseSuccess(w, "Cinema updated", cinema)
}

func (h *CinemaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete cinema")
		return
	}

	utils.ResponseSuccess(w, "Cinema deleted", nil)
}
