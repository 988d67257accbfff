package save_employment_terms

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/handlers/get_employment_terms"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
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

// Handle PUT /api/v1/users/{userId}/employment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req SaveTermsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{id}/employment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	terms, err := req.ToDomain(userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Save(r.Context(), terms); err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("PUT /users/{id}/employment - Failed: user_id=%d, error=%v", userID, err)
		}
		return
	}

	current, err := h.service.IsCurrentlyEmployed(r.Context(), userID)
	if err != nil {
		h.logger.Error("PUT /users/{id}/employment - Failed to check employment: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /users/{id}/employment - Terms saved: user_id=%d, type=%s", userID, terms.Type)
	handlers.RespondJSON(w, http.StatusOK, get_employment_terms.FromDomain(terms, current))
}
