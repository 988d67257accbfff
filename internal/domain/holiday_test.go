package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntitlement(t *testing.T) {
	tests := []struct {
		name  string
		hours string
		want  string
	}{
		{name: "full time", hours: "40", want: "28"},
		{name: "exactly full time", hours: "37.5", want: "28"},
		{name: "part time exact", hours: "18.75", want: "14"},
		{name: "part time rounds up to half", hours: "30", want: "22.5"},
		// 20 / 37.5 * 28 = 14.93, ближайшая половина дня - 15
		{name: "part time rounds to nearest half", hours: "20", want: "15"},
		{name: "no hours", hours: "0", want: "0"},
		{name: "negative", hours: "-5", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Entitlement(dec(tt.hours), DefaultFullTimeWeeklyHours, DefaultStatutoryDays)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestHolidayQuota_DaysRemaining(t *testing.T) {
	q := &HolidayQuota{DaysEntitled: dec("22.5"), DaysTaken: dec("5")}
	assert.True(t, q.DaysRemaining().Equal(dec("17.5")))
	assert.True(t, q.DaysTaken.Add(q.DaysRemaining()).Equal(q.DaysEntitled))
}

func TestHolidayRequest_QuotaYear(t *testing.T) {
	r := &HolidayRequest{
		StartDate: time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2026, r.QuotaYear())
}
