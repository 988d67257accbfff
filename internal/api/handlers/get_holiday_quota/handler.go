package get_holiday_quota

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

// Handle GET /api/v1/users/{userId}/holiday-quota?year=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/holiday-quota - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	year, err := handlers.QueryYear(r, time.Now())
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	quota, err := h.service.Quota(r.Context(), userID, year)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /users/{id}/holiday-quota - Failed: user_id=%d, year=%d, error=%v", userID, year, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromQuota(quota))
}
