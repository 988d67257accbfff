package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidQuery     = "некорректные параметры запроса: ожидаются date (YYYY-MM-DD), service_id, use_override, step"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/available-slots
// Query params: date (required), service_id (required, repeatable), use_override, step
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	query := r.URL.Query()
	if len(query["service_id"]) == 0 {
		h.logger.Warn("GET /stylists/{id}/available-slots - Missing service ID: stylist_id=%d", stylistID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(stylistID, query)
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /stylists/{id}/available-slots - Failed to get slots: stylist_id=%d, error=%v", stylistID, err)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/available-slots - Slots retrieved successfully: stylist_id=%d, slots_count=%d",
		stylistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
