package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationMethod is how the stylist cost of an appointment was derived
type CalculationMethod string

const (
	MethodHourly     CalculationMethod = "hourly"
	MethodCommission CalculationMethod = "commission"
)

// CommissionBreakdown is the structured commission document attached to commission cost records
type CommissionBreakdown struct {
	TotalCommission      decimal.Decimal `json:"total_commission"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	ServiceRevenue       decimal.Decimal `json:"service_revenue"`
	BillingMethod        string          `json:"billing_method"`
	StylistEarnings      decimal.Decimal `json:"stylist_earnings"`
	SalonPortion         decimal.Decimal `json:"salon_portion"`
}

// BillingElementShare is the informational apportionment of one billing element
type BillingElementShare struct {
	Percentage        decimal.Decimal `json:"percentage"`
	Amount            decimal.Decimal `json:"amount"`
	CommissionPortion decimal.Decimal `json:"commission_portion"`
}

// AppointmentCost is the derived financial record of a completed appointment
type AppointmentCost struct {
	ID                     int64
	AppointmentID          int64
	ServiceRevenue         decimal.Decimal
	StylistCost            decimal.Decimal
	SalonProfit            decimal.Decimal
	Method                 CalculationMethod
	HoursWorked            *decimal.Decimal
	CommissionAmount       *decimal.Decimal
	CommissionBreakdown    *CommissionBreakdown
	BillingElementsApplied map[string]BillingElementShare
	BillingMethod          *string
	CalculatedAt           time.Time
}

// CostInput is everything the cost calculation consumes
type CostInput struct {
	AppointmentID   int64
	Revenue         decimal.Decimal
	DurationMinutes int
	Terms           *EmploymentTerms
	BillingElements []*BillingElement
}

// ComputeCost derives the cost record. Returns nil when the regime is undefined
// (no terms, or the rate the regime needs is missing).
func ComputeCost(in CostInput) *AppointmentCost {
	method, ok := in.Terms.Method()
	if !ok {
		return nil
	}

	revenue := RoundMoney(in.Revenue)
	cost := &AppointmentCost{
		AppointmentID:  in.AppointmentID,
		ServiceRevenue: revenue,
		Method:         method,
	}
	if in.Terms.BillingMethod != "" {
		bm := in.Terms.BillingMethod
		cost.BillingMethod = &bm
	}

	switch method {
	case MethodHourly:
		hours := decimal.NewFromInt(int64(in.DurationMinutes)).Div(sixty)
		hoursWorked := RoundMoney(hours)
		cost.HoursWorked = &hoursWorked
		cost.StylistCost = RoundMoney(in.Terms.HourlyRate.Mul(hours))

	case MethodCommission:
		pct := *in.Terms.CommissionRate
		commission := Percent(in.Revenue, pct)
		amount := RoundMoney(commission)
		cost.CommissionAmount = &amount
		cost.StylistCost = amount
		cost.CommissionBreakdown = &CommissionBreakdown{
			TotalCommission:      amount,
			CommissionPercentage: pct,
			ServiceRevenue:       revenue,
			BillingMethod:        in.Terms.BillingMethod,
			StylistEarnings:      amount,
			SalonPortion:         RoundMoney(in.Revenue.Sub(commission)),
		}
		cost.BillingElementsApplied = applyBillingElements(in.Revenue, pct, in.BillingElements)
	}

	cost.SalonProfit = cost.ServiceRevenue.Sub(cost.StylistCost)
	return cost
}

func applyBillingElements(revenue, commissionPct decimal.Decimal, elements []*BillingElement) map[string]BillingElementShare {
	applied := make(map[string]BillingElementShare, len(elements))
	for _, el := range elements {
		if !el.IsActive {
			continue
		}
		amount := Percent(revenue, el.Percentage)
		applied[el.Name] = BillingElementShare{
			Percentage:        el.Percentage,
			Amount:            RoundMoney(amount),
			CommissionPortion: RoundMoney(Percent(amount, commissionPct)),
		}
	}
	return applied
}

// CostReportRow is a cost record joined with the appointment facts reports need
type CostReportRow struct {
	Cost            AppointmentCost
	StylistID       int64
	Date            time.Time
	DurationMinutes int
}

// CostFilter selects cost records of completed appointments in a date range
type CostFilter struct {
	From      time.Time
	To        time.Time
	StylistID *int64
	Method    *CalculationMethod
}
