package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func TestResolveTiming(t *testing.T) {
	svc := &Service{ID: 1, Name: "Cut", DurationMinutes: 45, WaitingMinutes: ptr.Ptr(15)}

	tests := []struct {
		name        string
		override    *StylistServiceTiming
		useOverride bool
		want        Timing
	}{
		{
			name: "no override",
			want: Timing{DurationMinutes: 45, WaitingMinutes: 15},
		},
		{
			name:        "active override used",
			override:    &StylistServiceTiming{CustomDurationMinutes: ptr.Ptr(30), IsActive: true},
			useOverride: true,
			want:        Timing{DurationMinutes: 30, WaitingMinutes: 15},
		},
		{
			name:        "override waiting only",
			override:    &StylistServiceTiming{CustomWaitingMinutes: ptr.Ptr(0), IsActive: true},
			useOverride: true,
			want:        Timing{DurationMinutes: 45, WaitingMinutes: 0},
		},
		{
			name:        "inactive override ignored",
			override:    &StylistServiceTiming{CustomDurationMinutes: ptr.Ptr(30), IsActive: false},
			useOverride: true,
			want:        Timing{DurationMinutes: 45, WaitingMinutes: 15},
		},
		{
			name:     "caller did not ask for override",
			override: &StylistServiceTiming{CustomDurationMinutes: ptr.Ptr(30), IsActive: true},
			want:     Timing{DurationMinutes: 45, WaitingMinutes: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTiming(svc, tt.override, tt.useOverride))
		})
	}
}

func TestResolveTiming_NoStandardWaiting(t *testing.T) {
	svc := &Service{DurationMinutes: 20}
	assert.Equal(t, Timing{DurationMinutes: 20}, ResolveTiming(svc, nil, true))
}

func TestAllowedServices(t *testing.T) {
	active := []*Service{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Len(t, AllowedServices(active, nil), 3)

	got := AllowedServices(active, []StylistServiceAllowance{
		{ServiceID: 1, IsAllowed: true},
		{ServiceID: 2, IsAllowed: false},
		{ServiceID: 99, IsAllowed: true},
	})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// записи есть, но все запрещают - пустой список, а не "все услуги"
	assert.Empty(t, AllowedServices(active, []StylistServiceAllowance{{ServiceID: 1, IsAllowed: false}}))
}

func TestService_Validate(t *testing.T) {
	valid := &Service{Name: "Cut", DurationMinutes: 45, Price: dec("20")}
	assert.NoError(t, valid.Validate())

	invalid := &Service{DurationMinutes: 481, WaitingMinutes: ptr.Ptr(241), Price: dec("-1")}
	err := invalid.Validate()
	var list *ErrorList
	require.ErrorAs(t, err, &list)
	assert.Equal(t, 4, list.Len())
}
