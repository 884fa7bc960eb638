package adaptor

import (
	"net/http"

	"cinema-ticket/internal/usecase"
	"cinema-ticket/pkg/utils"

	"go.uber.org/zap"
)

type RefreshmentHandler struct {
	service usecase.RefreshmentService
	log     *zap.Logger
}

func NewRefreshmentHandler(service usecase.RefreshmentService, log *zap.Logger) *RefreshmentHandler {
	return &RefreshmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "refreshment")),
	}
}

// List handles GET /api/refreshments
func (h *RefreshmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list refreshments")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}
