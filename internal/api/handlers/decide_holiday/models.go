package decide_holiday

// DecideHolidayRequest HTTP request model
type DecideHolidayRequest struct {
	Decision string `json:"decision"` // approve | reject
	Notes    string `json:"notes,omitempty"`
}
