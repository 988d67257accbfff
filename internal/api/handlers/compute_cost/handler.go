package compute_cost

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
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

// Handle POST /api/v1/appointments/{appointmentId}/cost
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/cost - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	cost, err := h.service.ComputeCost(r.Context(), appointmentID)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("POST /appointments/{id}/cost - Failed: appointment_id=%d, error=%v", appointmentID, err)
		}
		return
	}

	var response ComputeCostResponse
	if cost != nil {
		response.Cost = handlers.NewCostResponse(cost)
	} else {
		h.logger.Warn("POST /appointments/{id}/cost - No cost regime for appointment_id=%d", appointmentID)
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}
