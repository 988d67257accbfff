package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// ParseAppointmentStatus validates a canonical status spelling
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
	}
	return status, nil
}

// transitionRule describes one legal edge of the state machine
type transitionRule struct {
	minActorLevel int
}

// transitions is the legal-transition table. Self-edges on confirmed and completed
// make repeated status updates idempotent; cancelled and no-show are terminal.
var transitions = map[AppointmentStatus]map[AppointmentStatus]transitionRule{
	StatusConfirmed: {
		StatusConfirmed: {},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	},
	StatusCompleted: {
		StatusCompleted: {},
		StatusConfirmed: {minActorLevel: LevelStylist}, // reopen
	},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CheckTransition returns a StateError for an illegal edge and a PolicyError when the
// actor's seniority is below what the edge requires
func CheckTransition(from, to AppointmentStatus, actorLevel int) error {
	rule, ok := transitions[from][to]
	if !ok {
		return &StateError{Entity: "appointment", From: string(from), To: string(to)}
	}
	if actorLevel < rule.minActorLevel {
		return &PolicyError{Kind: PolicyForbiddenActor, Detail: fmt.Sprintf("%s -> %s requires an operational role", from, to)}
	}
	return nil
}

// Segment is one service performed within an appointment, in booking order
type Segment struct {
	ServiceID       int64
	ServiceName     string
	Order           int
	DurationMinutes int
	WaitingMinutes  int
	Price           decimal.Decimal // снимок цены на момент записи
}

// TotalMinutes returns duration plus waiting time
func (s Segment) TotalMinutes() int {
	return s.DurationMinutes + s.WaitingMinutes
}

// StatusChange is one entry of an appointment's status history
type StatusChange struct {
	ID            int64
	AppointmentID int64
	Status        AppointmentStatus
	Notes         string
	ChangedBy     int64
	ChangedAt     time.Time
}

// Appointment is a booking of one or more service segments with a stylist
type Appointment struct {
	ID           int64
	CustomerID   int64
	StylistID    int64
	BookedByID   int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       AppointmentStatus
	Notes        string
	ContactPhone *string
	ContactEmail *string

	Segments []Segment
	History  []StatusChange

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the appointment's [start, end) interval
func (a *Appointment) Window() calendar.Window {
	return calendar.Window{Start: a.StartTime, End: a.EndTime}
}

// DurationMinutes returns end - start
func (a *Appointment) DurationMinutes() int {
	return a.Window().DurationMinutes()
}

// Revenue sums the segment price snapshots
func (a *Appointment) Revenue() decimal.Decimal {
	total := decimal.Zero
	for _, s := range a.Segments {
		total = total.Add(s.Price)
	}
	return total
}

// BlocksSlot reports whether the appointment occupies its stylist's time
func (a *Appointment) BlocksSlot() bool {
	return a.Status != StatusCancelled
}

// CheckSegments verifies that segment totals add up to end - start
func (a *Appointment) CheckSegments() error {
	total := 0
	for _, s := range a.Segments {
		total += s.TotalMinutes()
	}
	if total != a.DurationMinutes() {
		return &InvariantError{Description: fmt.Sprintf(
			"appointment id=%d segments sum to %d minutes but window %s is %d minutes",
			a.ID, total, a.Window(), a.DurationMinutes())}
	}
	return nil
}

// AppointmentFilter filters appointment listings. Nil fields are not applied.
type AppointmentFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	StylistID  *int64
	CustomerID *int64
	Status     *AppointmentStatus
}
