package costs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Earnings заработок стилиста за период
type Earnings struct {
	StylistID        int64
	From             time.Time
	To               time.Time
	TotalEarnings    decimal.Decimal
	TotalHours       decimal.Decimal
	AppointmentCount int
}

// ProfitSummary итоги салона за период
type ProfitSummary struct {
	From             time.Time
	To               time.Time
	Revenue          decimal.Decimal
	StylistCost      decimal.Decimal
	Profit           decimal.Decimal
	AppointmentCount int
	MarginPercent    decimal.Decimal
}

// StylistCommission комиссия одного стилиста за период
type StylistCommission struct {
	StylistID        int64
	Revenue          decimal.Decimal
	Commission       decimal.Decimal
	SalonPortion     decimal.Decimal
	AppointmentCount int
}

// CommissionSummary итоги по записям с комиссионным расчётом
type CommissionSummary struct {
	From             time.Time
	To               time.Time
	Revenue          decimal.Decimal
	Commission       decimal.Decimal
	SalonPortion     decimal.Decimal
	AppointmentCount int
	ByStylist        []StylistCommission
}
