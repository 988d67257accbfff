package create_billing_element

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/handlers/list_billing_elements"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service BillingService
	logger  Logger
}

func NewHandler(service BillingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/billing-elements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BillingElementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /billing-elements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), req.ToDomain())
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("POST /billing-elements - Failed: %v", err)
		}
		return
	}

	h.logger.Info("POST /billing-elements - Element created: id=%d, name=%q", created.ID, created.Name)
	handlers.RespondJSON(w, http.StatusCreated, list_billing_elements.FromDomain(created))
}
