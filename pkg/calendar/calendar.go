// Package calendar holds local civil date helpers and half-open time windows.
// Civil dates are represented as time.Time at midnight UTC so that date
// arithmetic never crosses a DST boundary.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// DateFormat is the canonical civil date layout
const DateFormat = "2006-01-02"

// ErrInvalidWindow is returned for windows where end is not after start
var ErrInvalidWindow = errors.New("calendar: invalid time window")

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// Weekdays lists weekday keys Monday first
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DateOnly drops the clock part and pins the date to UTC midnight
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the civil date of now in loc
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return DateOnly(now)
}

// ParseDate parses YYYY-MM-DD into a civil date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// WeekdayKey returns the lowercase english weekday name used in schedule documents
func WeekdayKey(date time.Time) string {
	return weekdayKeys[date.Weekday()]
}

// IsWorkingDay reports whether the date is Monday through Friday
func IsWorkingDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDays counts Monday-Friday dates in [from, to], both inclusive.
// Returns 0 when to is before from.
func WorkingDays(from, to time.Time) int {
	from, to = DateOnly(from), DateOnly(to)
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// Window is a half-open interval [Start, End) within one day
type Window struct {
	Start types.TimeString
	End   types.TimeString
}

// NewWindow validates both bounds and their order
func NewWindow(start, end types.TimeString) (Window, error) {
	s, err := start.Minutes()
	if err != nil {
		return Window{}, err
	}
	e, err := end.Minutes()
	if err != nil {
		return Window{}, err
	}
	if e <= s {
		return Window{}, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, start, end)
	}
	return Window{Start: start, End: end}, nil
}

// Overlaps: [a,b) and [c,d) overlap iff a < d and c < b
func (w Window) Overlaps(other Window) bool {
	return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End)
}

// Contains reports whether other lies entirely within w
func (w Window) Contains(other Window) bool {
	return !other.Start.IsBefore(w.Start) && !w.End.IsBefore(other.End)
}

// DurationMinutes returns End - Start
func (w Window) DurationMinutes() int {
	s, errS := w.Start.Minutes()
	e, errE := w.End.Minutes()
	if errS != nil || errE != nil {
		return 0
	}
	return e - s
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}
