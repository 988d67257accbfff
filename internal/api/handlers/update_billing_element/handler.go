package update_billing_element

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/handlers/create_billing_element"
	"github.com/m04kA/SMC-SalonService/internal/api/handlers/list_billing_elements"
)

const (
	msgInvalidElementID   = "некорректный ID статьи"
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

// Handle PUT /api/v1/billing-elements/{elementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	elementID, err := handlers.PathInt64(r, "elementId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidElementID)
		return
	}

	var req create_billing_element.BillingElementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /billing-elements/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	b := req.ToDomain()
	b.ID = elementID
	if err := h.service.Update(r.Context(), b); err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("PUT /billing-elements/{id} - Failed: id=%d, error=%v", elementID, err)
		}
		return
	}

	h.logger.Info("PUT /billing-elements/{id} - Element updated: id=%d", elementID)
	handlers.RespondJSON(w, http.StatusOK, list_billing_elements.FromDomain(b))
}
