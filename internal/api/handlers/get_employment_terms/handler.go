package get_employment_terms

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgTermsNotFound = "условия занятости не заданы"
)

type Handler struct {
	service EmploymentService
	logger  Logger
}

func NewHandler(service EmploymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/employment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	terms, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/employment - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if terms == nil {
		handlers.RespondNotFound(w, msgTermsNotFound)
		return
	}

	current, err := h.service.IsCurrentlyEmployed(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/employment - Failed to check employment: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(terms, current))
}
