package stylist_earnings

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidPeriod    = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service CostService
	logger  Logger
}

func NewHandler(service CostService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/earnings?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/earnings - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/earnings - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	earnings, err := h.service.StylistEarnings(r.Context(), stylistID, from, to)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /stylists/{id}/earnings - Failed: stylist_id=%d, error=%v", stylistID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromEarnings(earnings))
}
