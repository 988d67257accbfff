package create_service

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPrice       = "некорректная цена"
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

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	svc, err := req.ToDomain()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPrice)
		return
	}

	created, err := h.service.Create(r.Context(), svc)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("POST /services - Failed: %v", err)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewServiceResponse(created))
}
