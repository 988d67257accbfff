package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service limits
const (
	MinServiceDuration = 1
	MaxServiceDuration = 480
	MinWaitingTime     = 0
	MaxWaitingTime     = 240
)

// Service is a priced, durationed catalog entry
type Service struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	WaitingMinutes  *int
	Price           decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the ranges of a service definition
func (s *Service) Validate() error {
	var list ErrorList
	if s.Name == "" {
		list.Add(&ValidationError{Field: "name", Reason: "required"})
	}
	if s.DurationMinutes < MinServiceDuration || s.DurationMinutes > MaxServiceDuration {
		list.Add(&ValidationError{Field: "duration", Reason: "must be between 1 and 480 minutes"})
	}
	if s.WaitingMinutes != nil && (*s.WaitingMinutes < MinWaitingTime || *s.WaitingMinutes > MaxWaitingTime) {
		list.Add(&ValidationError{Field: "waiting_time", Reason: "must be between 0 and 240 minutes"})
	}
	if s.Price.IsNegative() {
		list.Add(&ValidationError{Field: "price", Reason: "must not be negative"})
	}
	return list.Err()
}

// StylistServiceAllowance marks whether a stylist may perform a service
type StylistServiceAllowance struct {
	StylistID int64
	ServiceID int64
	IsAllowed bool
}

// StylistServiceTiming is a per-stylist duration/waiting override for a service
type StylistServiceTiming struct {
	StylistID             int64
	ServiceID             int64
	CustomDurationMinutes *int
	CustomWaitingMinutes  *int
	IsActive              bool
}

// AllowedServices returns active services a stylist may perform.
// No allowance records at all means every active service is allowed.
func AllowedServices(active []*Service, allowances []StylistServiceAllowance) []*Service {
	if len(allowances) == 0 {
		return active
	}

	allowed := make(map[int64]bool, len(allowances))
	for _, a := range allowances {
		if a.IsAllowed {
			allowed[a.ServiceID] = true
		}
	}

	result := make([]*Service, 0, len(allowed))
	for _, s := range active {
		if allowed[s.ID] {
			result = append(result, s)
		}
	}
	return result
}

// Timing is the effective slot size of one service segment
type Timing struct {
	DurationMinutes int
	WaitingMinutes  int
}

// TotalMinutes returns duration plus waiting time
func (t Timing) TotalMinutes() int {
	return t.DurationMinutes + t.WaitingMinutes
}

// lookup returns a value and whether it is defined
type lookup func() (int, bool)

func firstDefined(chain ...lookup) int {
	for _, l := range chain {
		if v, ok := l(); ok {
			return v
		}
	}
	return 0
}

func overrideDuration(o *StylistServiceTiming) lookup {
	return func() (int, bool) {
		if o == nil || !o.IsActive || o.CustomDurationMinutes == nil {
			return 0, false
		}
		return *o.CustomDurationMinutes, true
	}
}

func overrideWaiting(o *StylistServiceTiming) lookup {
	return func() (int, bool) {
		if o == nil || !o.IsActive || o.CustomWaitingMinutes == nil {
			return 0, false
		}
		return *o.CustomWaitingMinutes, true
	}
}

func standardDuration(s *Service) lookup {
	return func() (int, bool) { return s.DurationMinutes, true }
}

func standardWaiting(s *Service) lookup {
	return func() (int, bool) {
		if s.WaitingMinutes == nil {
			return 0, false
		}
		return *s.WaitingMinutes, true
	}
}

// ResolveTiming picks the effective duration and waiting time of a service for a stylist:
// an active override value when useOverride is set, otherwise the service standard.
func ResolveTiming(s *Service, override *StylistServiceTiming, useOverride bool) Timing {
	if !useOverride {
		override = nil
	}
	return Timing{
		DurationMinutes: firstDefined(overrideDuration(override), standardDuration(s)),
		WaitingMinutes:  firstDefined(overrideWaiting(override), standardWaiting(s)),
	}
}
