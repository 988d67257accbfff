package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// WorkDay is one weekday of a work pattern
type WorkDay struct {
	Working bool             `json:"working"`
	Start   types.TimeString `json:"start"`
	End     types.TimeString `json:"end"`
}

// WorkPattern is a named weekly schedule of a user. At most one pattern per user is active.
type WorkPattern struct {
	ID        int64
	UserID    int64
	Name      string
	Schedule  map[string]WorkDay
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

var sixty = decimal.NewFromInt(60)

// WeeklyHours sums end - start over working weekdays whose times parse.
// Weekly hours are derived and never stored.
func (p *WorkPattern) WeeklyHours() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	minutes := 0
	for _, day := range calendar.Weekdays {
		if w, ok := p.windowForKey(day); ok {
			minutes += w.DurationMinutes()
		}
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// WindowFor returns the working window of the date's weekday
func (p *WorkPattern) WindowFor(date time.Time) (calendar.Window, bool) {
	return p.windowForKey(calendar.WeekdayKey(date))
}

func (p *WorkPattern) windowForKey(key string) (calendar.Window, bool) {
	day, ok := p.Schedule[key]
	if !ok || !day.Working {
		return calendar.Window{}, false
	}
	w, err := calendar.NewWindow(day.Start, day.End)
	if err != nil {
		return calendar.Window{}, false
	}
	return w, true
}

// IsAvailable is true iff the weekday is working and start <= at < end
func (p *WorkPattern) IsAvailable(date time.Time, at types.TimeString) bool {
	w, ok := p.WindowFor(date)
	if !ok {
		return false
	}
	return !at.IsBefore(w.Start) && at.IsBefore(w.End)
}

// Validate checks names and working intervals
func (p *WorkPattern) Validate() error {
	var list ErrorList
	if p.Name == "" {
		list.Add(&ValidationError{Field: "name", Reason: "required"})
	}
	for day, wd := range p.Schedule {
		if !isWeekday(day) {
			list.Add(&ValidationError{Field: "work_schedule." + day, Reason: "unknown weekday"})
			continue
		}
		if !wd.Working {
			continue
		}
		if _, err := calendar.NewWindow(wd.Start, wd.End); err != nil {
			list.Add(&ValidationError{Field: "work_schedule." + day, Reason: "end must be after start"})
		}
	}
	return list.Err()
}
