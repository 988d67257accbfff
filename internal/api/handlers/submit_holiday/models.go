package submit_holiday

import (
	"github.com/m04kA/SMC-SalonService/internal/service/holidays"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// SubmitHolidayRequest HTTP request model
type SubmitHolidayRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SubmitHolidayRequest) ToServiceRequest(userID int64) (holidays.SubmitRequest, error) {
	from, err := calendar.ParseDate(r.StartDate)
	if err != nil {
		return holidays.SubmitRequest{}, err
	}
	to, err := calendar.ParseDate(r.EndDate)
	if err != nil {
		return holidays.SubmitRequest{}, err
	}
	return holidays.SubmitRequest{UserID: userID, From: from, To: to, Notes: r.Notes}, nil
}
