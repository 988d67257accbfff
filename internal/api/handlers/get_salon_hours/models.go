package get_salon_hours

import "github.com/m04kA/SMC-SalonService/internal/domain"

// SalonHoursResponse HTTP модель часов работы (используется и для замены)
type SalonHoursResponse struct {
	OpeningHours              map[string]domain.DayHours `json:"openingHours"`
	EmergencyExtensionEnabled bool                       `json:"emergencyExtensionEnabled"`
}

// FromDomain конвертирует часы работы в HTTP модель
func FromDomain(h *domain.SalonHours) *SalonHoursResponse {
	return &SalonHoursResponse{
		OpeningHours:              h.OpeningHours,
		EmergencyExtensionEnabled: h.EmergencyExtensionEnabled,
	}
}
