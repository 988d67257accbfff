package commission_summary

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidPeriod = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service CostService
	logger  Logger
}

func NewHandler(service CostService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/commission?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /reports/commission - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	summary, err := h.service.CommissionSummary(r.Context(), from, to)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /reports/commission - Failed: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSummary(summary))
}
