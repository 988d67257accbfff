package get_work_pattern

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidUserID   = "некорректный ID пользователя"
	msgPatternNotFound = "активный график не найден"
)

type Handler struct {
	service WorkPatternService
	logger  Logger
}

func NewHandler(service WorkPatternService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/work-pattern
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	p, err := h.service.Active(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/work-pattern - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if p == nil {
		handlers.RespondNotFound(w, msgPatternNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(p))
}
