package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// AvailableSlotsResponse ответ со списком свободных интервалов
type AvailableSlotsResponse struct {
	StylistID       int64          `json:"stylistId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse свободный интервал
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest собирает запрос из query параметров.
// service_id повторяется для каждой услуги в порядке выполнения.
func ToUseCaseRequest(stylistID int64, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := calendar.ParseDate(query.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	useOverride := false
	if raw := query.Get("use_override"); raw != "" {
		if useOverride, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("use_override: %w", err)
		}
	}

	step := 0
	if raw := query.Get("step"); raw != "" {
		if step, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}
	}

	req := &getAvailableSlots.Request{
		StylistID:   stylistID,
		Date:        date,
		StepMinutes: step,
	}
	for _, raw := range query["service_id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("service_id: %w", err)
		}
		req.Segments = append(req.Segments, validate_booking.SegmentRequest{ServiceID: id, UseOverride: useOverride})
	}

	return req, nil
}

// FromUseCaseResponse преобразует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{StartTime: s.StartTime.String(), EndTime: s.EndTime.String()})
	}

	return &AvailableSlotsResponse{
		StylistID:       resp.StylistID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
