package get_holiday_quota

import "github.com/m04kA/SMC-SalonService/internal/domain"

// QuotaResponse HTTP response model
type QuotaResponse struct {
	UserID            int64  `json:"userId"`
	Year              int    `json:"year"`
	TotalHoursPerWeek string `json:"totalHoursPerWeek"`
	DaysEntitled      string `json:"daysEntitled"`
	DaysTaken         string `json:"daysTaken"`
	DaysRemaining     string `json:"daysRemaining"`
}

// FromQuota конвертирует квоту в HTTP response
func FromQuota(q *domain.HolidayQuota) *QuotaResponse {
	return &QuotaResponse{
		UserID:            q.UserID,
		Year:              q.Year,
		TotalHoursPerWeek: q.TotalHoursPerWeek.StringFixed(2),
		DaysEntitled:      q.DaysEntitled.StringFixed(1),
		DaysTaken:         q.DaysTaken.StringFixed(1),
		DaysRemaining:     q.DaysRemaining().StringFixed(1),
	}
}
