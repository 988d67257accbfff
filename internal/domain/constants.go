package domain

import "github.com/m04kA/SMC-SalonService/pkg/calendar"

// Business validation constants
const (
	MaxNotesLength        = 1000
	MaxSegmentsPerBooking = 10
)

// DateFormat YYYY-MM-DD
const DateFormat = calendar.DateFormat

// Entity names used in MissingError and StateError
const (
	EntityUser            = "user"
	EntityStylist         = "stylist"
	EntityCustomer        = "customer"
	EntityService         = "service"
	EntityAppointment     = "appointment"
	EntityHolidayRequest  = "holiday_request"
	EntityEmploymentTerms = "employment_terms"
	EntityWorkPattern     = "work_pattern"
	EntityBillingElement  = "billing_element"
	EntityAppointmentCost = "appointment_cost"
	EntityHolidayQuota    = "holiday_quota"
)
