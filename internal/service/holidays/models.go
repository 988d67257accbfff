package holidays

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Policy параметры модели расчёта отпуска
type Policy struct {
	FullTimeWeeklyHours decimal.Decimal
	StatutoryDays       decimal.Decimal
	Location            *time.Location
}

// DefaultPolicy возвращает британскую модель: 28 дней при 37.5 часах в неделю
func DefaultPolicy() Policy {
	return Policy{
		FullTimeWeeklyHours: domain.DefaultFullTimeWeeklyHours,
		StatutoryDays:       domain.DefaultStatutoryDays,
		Location:            time.UTC,
	}
}

// SubmitRequest заявка на отпуск
type SubmitRequest struct {
	UserID int64
	From   time.Time
	To     time.Time
	Notes  string
}

// DecideRequest решение по заявке
type DecideRequest struct {
	RequestID int64
	ActorID   int64
	Decision  domain.HolidayDecision
	Notes     string
}
