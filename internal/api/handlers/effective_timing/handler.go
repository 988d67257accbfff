package effective_timing

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidStylistID   = "некорректный ID стилиста"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidUseOverride = "некорректное значение use_override"
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

// Handle GET /api/v1/stylists/{stylistId}/services/{serviceId}/timing?use_override=true
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

	useOverride := false
	if raw := r.URL.Query().Get("use_override"); raw != "" {
		if useOverride, err = strconv.ParseBool(raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidUseOverride)
			return
		}
	}

	timing, err := h.service.EffectiveTiming(r.Context(), stylistID, serviceID, useOverride)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /stylists/{id}/services/{id}/timing - Failed: stylist_id=%d, service_id=%d, error=%v",
				stylistID, serviceID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, TimingResponse{
		StylistID:       stylistID,
		ServiceID:       serviceID,
		UseOverride:     useOverride,
		DurationMinutes: timing.DurationMinutes,
		WaitingMinutes:  timing.WaitingMinutes,
		TotalMinutes:    timing.TotalMinutes(),
	})
}
