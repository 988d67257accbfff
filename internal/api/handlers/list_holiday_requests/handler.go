package list_holiday_requests

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidYear   = "некорректный год"
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

// Handle GET /api/v1/users/{userId}/holidays?year=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/holidays - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	year, err := handlers.QueryYear(r, time.Now())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	list, err := h.service.ListRequests(r.Context(), userID, year)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /users/{id}/holidays - Failed: user_id=%d, error=%v", userID, err)
		}
		return
	}

	response := make([]*handlers.HolidayRequestResponse, 0, len(list))
	for _, req := range list {
		response = append(response, handlers.NewHolidayRequestResponse(req))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}
