package list_billing_elements

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
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

// Handle GET /api/v1/billing-elements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	elements, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /billing-elements - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := make([]*BillingElementResponse, 0, len(elements))
	for _, b := range elements {
		resp = append(resp, FromDomain(b))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
