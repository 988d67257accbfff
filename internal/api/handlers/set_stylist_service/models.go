package set_stylist_service

// TimingOverride персональная длительность услуги
type TimingOverride struct {
	CustomDurationMinutes *int `json:"customDurationMinutes,omitempty"`
	CustomWaitingMinutes  *int `json:"customWaitingMinutes,omitempty"`
	IsActive              bool `json:"isActive"`
}

// SetStylistServiceRequest HTTP request model. Отсутствующие части не изменяются.
type SetStylistServiceRequest struct {
	IsAllowed *bool           `json:"isAllowed,omitempty"`
	Timing    *TimingOverride `json:"timing,omitempty"`
}
