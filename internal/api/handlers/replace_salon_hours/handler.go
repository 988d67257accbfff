package replace_salon_hours

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_hours"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/salon-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req get_salon_hours.SalonHoursResponse
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salon-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hours := &domain.SalonHours{
		OpeningHours:              req.OpeningHours,
		EmergencyExtensionEnabled: req.EmergencyExtensionEnabled,
	}
	if err := h.service.Replace(r.Context(), hours); err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("PUT /salon-hours - Failed: %v", err)
		}
		return
	}

	h.logger.Info("PUT /salon-hours - Salon hours replaced: days=%d, emergency=%t", len(hours.OpeningHours), hours.EmergencyExtensionEnabled)
	handlers.RespondJSON(w, http.StatusOK, get_salon_hours.FromDomain(hours))
}
