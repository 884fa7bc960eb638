package adaptor

import (
	"net/http"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// List handles GET /api/movies?page=&per_page=&status=
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.List(r.Context(), pagination(r), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// Search handles GET /api/movies/search?q=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

func (h *MovieHandler) Actors(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	actors, err := h.service.Actors(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie actors")
		return
	}

	utils.ResponseSuccess(w, "success", actors)
}

func (h *MovieHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.service.Reviews(r.Context(), id, pagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created", movie)
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.MovieRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	movie, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated", movie)
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted", nil)
}
