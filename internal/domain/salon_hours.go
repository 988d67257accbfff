package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// DayHours is the opening interval of one weekday
type DayHours struct {
	Open   types.TimeString `json:"open"`
	Close  types.TimeString `json:"close"`
	Closed bool             `json:"closed"`
}

// SalonHours is the salon-wide singleton of opening hours keyed by weekday name
type SalonHours struct {
	OpeningHours              map[string]DayHours
	EmergencyExtensionEnabled bool
	UpdatedAt                 time.Time
}

// DefaultSalonHours returns Mon-Fri 09:00-18:00, Sat 09:00-17:00, Sun closed, extensions enabled
func DefaultSalonHours() *SalonHours {
	hours := make(map[string]DayHours, len(calendar.Weekdays))
	for _, day := range calendar.Weekdays[:5] {
		hours[day] = DayHours{Open: "09:00", Close: "18:00"}
	}
	hours["saturday"] = DayHours{Open: "09:00", Close: "17:00"}
	hours["sunday"] = DayHours{Closed: true}

	return &SalonHours{
		OpeningHours:              hours,
		EmergencyExtensionEnabled: true,
	}
}

// OpeningFor returns the opening window of a date, or false when the day is closed or malformed
func (h *SalonHours) OpeningFor(date time.Time) (calendar.Window, bool) {
	day, ok := h.OpeningHours[calendar.WeekdayKey(date)]
	if !ok || day.Closed {
		return calendar.Window{}, false
	}
	w, err := calendar.NewWindow(day.Open, day.Close)
	if err != nil {
		return calendar.Window{}, false
	}
	return w, true
}

// Validate checks every configured weekday
func (h *SalonHours) Validate() error {
	var list ErrorList
	for day, hours := range h.OpeningHours {
		if !isWeekday(day) {
			list.Add(&ValidationError{Field: "opening_hours." + day, Reason: "unknown weekday"})
			continue
		}
		if hours.Closed {
			continue
		}
		if _, err := calendar.NewWindow(hours.Open, hours.Close); err != nil {
			list.Add(&ValidationError{Field: "opening_hours." + day, Reason: "close must be after open"})
		}
	}
	return list.Err()
}

func isWeekday(day string) bool {
	for _, d := range calendar.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
