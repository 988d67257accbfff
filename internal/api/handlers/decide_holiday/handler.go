package decide_holiday

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/holidays"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/holidays/{requestId}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("PATCH /holidays/{id}/decision - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /holidays/{id}/decision - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req DecideHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /holidays/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Decide(r.Context(), holidays.DecideRequest{
		RequestID: requestID,
		ActorID:   userID,
		Decision:  domain.HolidayDecision(req.Decision),
		Notes:     req.Notes,
	})
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("PATCH /holidays/{id}/decision - Failed: request_id=%d, error=%v", requestID, err)
		}
		return
	}

	h.logger.Info("PATCH /holidays/{id}/decision - Decided: request_id=%d, decision=%s, user_id=%d", requestID, req.Decision, userID)
	handlers.RespondNoContent(w)
}
