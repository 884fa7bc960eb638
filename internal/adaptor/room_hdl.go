package adaptor

import (
	"net/http"

	"cinema-ticket/internal/dto/request"
	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// List handles GET /api/rooms?cinema_id=
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	var cinemaID int64
	if raw := r.URL.Query().Get("cinema_id"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid cinema_id", nil)
			return
		}
		cinemaID = id
	}

	rooms, err := h.service.List(r.Context(), pagination(r), cinemaID)
	if err != nil {
		handleServiceError(w, h.log, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	room, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// Seats handles GET /api/rooms/{id}/seats
func (h *RoomHandler) Seats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	seats, err := h.service.Seats(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get room seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.RoomUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "Room deleted", nil)
}
