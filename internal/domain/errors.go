package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds used as stable identifiers in API payloads and metrics labels
const (
	KindValidation = "validation"
	KindPolicy     = "policy"
	KindConflict   = "conflict"
	KindState      = "state"
	KindMissing    = "missing"
	KindInvariant  = "invariant"
)

// Policy kinds
const (
	PolicyServiceNotAllowed   = "service_not_allowed"
	PolicyNotStylist          = "not_stylist"
	PolicyOutsideOpeningHours = "outside_opening_hours"
	PolicySalonClosed         = "salon_closed"
	PolicyOutsideWorkPattern  = "outside_work_pattern"
	PolicyHolidayOverlap      = "holiday_overlap"
	PolicyInsufficientQuota   = "insufficient_quota"
	PolicyNoWorkingDays       = "no_working_days"
	PolicyForbiddenActor      = "forbidden_actor"
	PolicyServiceReferenced   = "service_referenced"
	PolicyAppointmentInPast   = "appointment_in_past"
)

// ValidationError is a user-correctable input problem
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// PolicyError is a domain rule denial
type PolicyError struct {
	Kind   string
	Detail string
}

func (e *PolicyError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("policy: %s", e.Kind)
	}
	return fmt.Sprintf("policy: %s: %s", e.Kind, e.Detail)
}

// ConflictError is detected at the transaction boundary, e.g. a double-booked slot
type ConflictError struct {
	Resource string
	Window   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s busy at %s", e.Resource, e.Window)
}

// StateError is an illegal state transition
type StateError struct {
	Entity string
	From   string
	To     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state: %s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// MissingError is a reference to an absent entity
type MissingError struct {
	Entity string
	ID     int64
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing: %s id=%d", e.Entity, e.ID)
}

// InvariantError indicates corrupted state. Never swallowed.
type InvariantError struct {
	Description string
}

func (e *InvariantError) Error() string {
	return "invariant: " + e.Description
}

// ErrorList collects validation and policy errors so that all of them can be reported at once
type ErrorList struct {
	Errors []error
}

// Add appends non-nil errors
func (l *ErrorList) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			l.Errors = append(l.Errors, err)
		}
	}
}

// Len returns the number of collected errors
func (l *ErrorList) Len() int {
	return len(l.Errors)
}

// Err returns the list as an error, or nil when empty
func (l *ErrorList) Err() error {
	if l == nil || len(l.Errors) == 0 {
		return nil
	}
	return l
}

func (l *ErrorList) Error() string {
	parts := make([]string, 0, len(l.Errors))
	for _, err := range l.Errors {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func (l *ErrorList) Unwrap() []error {
	return l.Errors
}

// ErrorKind classifies err into one of the Kind* constants.
// Returns "" for errors that are not domain errors.
func ErrorKind(err error) string {
	var (
		validationErr *ValidationError
		policyErr     *PolicyError
		conflictErr   *ConflictError
		stateErr      *StateError
		missingErr    *MissingError
		invariantErr  *InvariantError
		list          *ErrorList
	)
	switch {
	case errors.As(err, &list):
		// список всегда содержит только validation/policy
		for _, e := range list.Errors {
			if k := ErrorKind(e); k == KindValidation {
				return KindValidation
			}
		}
		return KindPolicy
	case errors.As(err, &invariantErr):
		return KindInvariant
	case errors.As(err, &conflictErr):
		return KindConflict
	case errors.As(err, &stateErr):
		return KindState
	case errors.As(err, &missingErr):
		return KindMissing
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &policyErr):
		return KindPolicy
	}
	return ""
}
