package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UK statutory holiday model defaults
var (
	DefaultFullTimeWeeklyHours = decimal.RequireFromString("37.5")
	DefaultStatutoryDays       = decimal.NewFromInt(28)
)

var two = decimal.NewFromInt(2)

// Entitlement returns statutory days for a weekly-hours figure: the full statutory
// days at or above full time, otherwise the pro-rata value rounded to the nearest half-day.
func Entitlement(weeklyHours, fullTimeHours, statutoryDays decimal.Decimal) decimal.Decimal {
	if !weeklyHours.IsPositive() || !fullTimeHours.IsPositive() {
		return decimal.Zero
	}
	if weeklyHours.GreaterThanOrEqual(fullTimeHours) {
		return statutoryDays
	}
	proRata := weeklyHours.Mul(statutoryDays).Div(fullTimeHours)
	return proRata.Mul(two).Round(0).Div(two)
}

// HolidayQuota is a user's holiday allowance for one year.
// TotalHoursPerWeek is frozen when the quota is created.
type HolidayQuota struct {
	ID                int64
	UserID            int64
	Year              int
	TotalHoursPerWeek decimal.Decimal
	DaysEntitled      decimal.Decimal
	DaysTaken         decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DaysRemaining returns entitled - taken
func (q *HolidayQuota) DaysRemaining() decimal.Decimal {
	return q.DaysEntitled.Sub(q.DaysTaken)
}

// HolidayStatus is the lifecycle state of a holiday request
type HolidayStatus string

const (
	HolidayPending  HolidayStatus = "pending"
	HolidayApproved HolidayStatus = "approved"
	HolidayRejected HolidayStatus = "rejected"
)

// HolidayDecision is the outcome an approver chooses
type HolidayDecision string

const (
	DecisionApprove HolidayDecision = "approve"
	DecisionReject  HolidayDecision = "reject"
)

// HolidayRequest is a request for leave between two dates, both inclusive
type HolidayRequest struct {
	ID            int64
	UserID        int64
	StartDate     time.Time
	EndDate       time.Time
	WorkingDays   int
	Status        HolidayStatus
	Notes         string
	DecisionNotes string
	ApprovedBy    *int64
	DecidedAt     *time.Time
	CreatedAt     time.Time
}

// BlocksDates reports whether the request prevents overlapping requests
func (r *HolidayRequest) BlocksDates() bool {
	return r.Status == HolidayPending || r.Status == HolidayApproved
}

// QuotaYear is the year the request is charged to. Requests crossing a year boundary
// are charged against the starting year.
func (r *HolidayRequest) QuotaYear() int {
	return r.StartDate.Year()
}
