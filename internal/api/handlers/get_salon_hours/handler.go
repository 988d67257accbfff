package get_salon_hours

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

type Handler struct {
	service SalonHoursService
	logger  Logger
}

func NewHandler(service SalonHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salon-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hours, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /salon-hours - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(hours))
}
