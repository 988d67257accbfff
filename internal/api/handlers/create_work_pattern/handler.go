package create_work_pattern

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/handlers/get_work_pattern"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/users/{userId}/work-patterns
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req CreatePatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{id}/work-patterns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), req.ToDomain(userID))
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("POST /users/{id}/work-patterns - Failed: user_id=%d, error=%v", userID, err)
		}
		return
	}

	h.logger.Info("POST /users/{id}/work-patterns - Pattern created: user_id=%d, pattern_id=%d", userID, created.ID)
	handlers.RespondJSON(w, http.StatusCreated, get_work_pattern.FromDomain(created))
}
