package effective_timing

// TimingResponse HTTP response model
type TimingResponse struct {
	StylistID       int64 `json:"stylistId"`
	ServiceID       int64 `json:"serviceId"`
	UseOverride     bool  `json:"useOverride"`
	DurationMinutes int   `json:"durationMinutes"`
	WaitingMinutes  int   `json:"waitingMinutes"`
	TotalMinutes    int   `json:"totalMinutes"`
}
