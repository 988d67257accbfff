package list_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректный параметр фильтра"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?date_from=&date_to=&stylist_id=&customer_id=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, msg, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msg)
		return
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		if !handlers.RespondDomainError(w, err) {
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
		}
		return
	}

	response := make([]*handlers.AppointmentResponse, 0, len(list))
	for _, a := range list {
		response = append(response, handlers.NewAppointmentResponse(a))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

func parseFilter(r *http.Request) (domain.AppointmentFilter, string, error) {
	var (
		filter domain.AppointmentFilter
		err    error
	)

	if filter.DateFrom, err = handlers.QueryDate(r, "date_from"); err != nil {
		return filter, msgInvalidDate, err
	}
	if filter.DateTo, err = handlers.QueryDate(r, "date_to"); err != nil {
		return filter, msgInvalidDate, err
	}
	if filter.StylistID, err = handlers.QueryInt64(r, "stylist_id"); err != nil {
		return filter, msgInvalidFilter, err
	}
	if filter.CustomerID, err = handlers.QueryInt64(r, "customer_id"); err != nil {
		return filter, msgInvalidFilter, err
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseAppointmentStatus(raw)
		if err != nil {
			return filter, msgInvalidFilter, err
		}
		filter.Status = &status
	}
	return filter, "", nil
}
