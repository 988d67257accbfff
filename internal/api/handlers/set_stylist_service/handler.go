package set_stylist_service

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	msgInvalidStylistID   = "некорректный ID стилиста"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNothingToUpdate    = "не указаны ни isAllowed, ни timing"
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

// Handle PUT /api/v1/stylists/{stylistId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req SetStylistServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stylists/{id}/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsAllowed == nil && req.Timing == nil {
		handlers.RespondBadRequest(w, msgNothingToUpdate)
		return
	}

	if req.IsAllowed != nil {
		err := h.service.SetAllowance(r.Context(), domain.StylistServiceAllowance{
			StylistID: stylistID,
			ServiceID: serviceID,
			IsAllowed: *req.IsAllowed,
		})
		if err != nil {
			if !handlers.RespondDomainError(w, err) {
				h.logger.Error("PUT /stylists/{id}/services/{id} - Failed to set allowance: %v", err)
			}
			return
		}
	}

	if req.Timing != nil {
		err := h.service.SetTiming(r.Context(), domain.StylistServiceTiming{
			StylistID:             stylistID,
			ServiceID:             serviceID,
			CustomDurationMinutes: req.Timing.CustomDurationMinutes,
			CustomWaitingMinutes:  req.Timing.CustomWaitingMinutes,
			IsActive:              req.Timing.IsActive,
		})
		if err != nil {
			if !handlers.RespondDomainError(w, err) {
				h.logger.Error("PUT /stylists/{id}/services/{id} - Failed to set timing: %v", err)
			}
			return
		}
	}

	h.logger.Info("PUT /stylists/{id}/services/{id} - Policy saved: stylist_id=%d, service_id=%d", stylistID, serviceID)
	handlers.RespondNoContent(w)
}
