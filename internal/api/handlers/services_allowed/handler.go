package services_allowed

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/services - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	services, err := h.service.ServicesAllowedFor(r.Context(), stylistID)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /stylists/{id}/services - Failed: stylist_id=%d, error=%v", stylistID, err)
		}
		return
	}

	response := make([]*handlers.ServiceResponse, 0, len(services))
	for _, s := range services {
		response = append(response, handlers.NewServiceResponse(s))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}
