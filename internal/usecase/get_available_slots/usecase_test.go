package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workpatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	stylistID  = 2
	customerID = 3
	haircutID  = 10
	cutID      = 11
)

var (
	friday = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeUsers struct{ byID map[int64]*domain.User }

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeCatalog struct {
	services map[int64]*domain.Service
	timings  map[int64]*domain.StylistServiceTiming
}

func (f *fakeCatalog) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.Service, error) {
	out := make(map[int64]*domain.Service)
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListTimings(_ context.Context, _ int64) (map[int64]*domain.StylistServiceTiming, error) {
	return f.timings, nil
}

type fakeHours struct{}

func (fakeHours) Get(_ context.Context) (*domain.SalonHours, error) {
	return domain.DefaultSalonHours(), nil
}

type fakePatterns struct{ pattern *domain.WorkPattern }

func (f *fakePatterns) GetActiveByUser(_ context.Context, _ int64) (*domain.WorkPattern, error) {
	if f.pattern == nil {
		return nil, workpatternRepo.ErrNotFound
	}
	return f.pattern, nil
}

type fakeAppointments struct {
	items []*domain.Appointment
	err   error
}

func (f *fakeAppointments) ListBlocking(_ context.Context, _ int64, date time.Time, _ int64) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Appointment
	for _, a := range f.items {
		if a.Date.Equal(date) && a.BlocksSlot() {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixture struct {
	patterns     *fakePatterns
	appointments *fakeAppointments
	uc           *UseCase
}

func intPtr(v int) *int { return &v }

func newFixture(now time.Time) *fixture {
	f := &fixture{
		patterns:     &fakePatterns{},
		appointments: &fakeAppointments{},
	}
	users := &fakeUsers{byID: map[int64]*domain.User{
		stylistID:  {ID: stylistID, IsActive: true, Roles: []domain.Role{{Name: domain.RoleStylist, Level: domain.LevelStylist}}},
		customerID: {ID: customerID, IsActive: true, Roles: []domain.Role{{Name: domain.RoleCustomer, Level: domain.LevelCustomer}}},
	}}
	catalog := &fakeCatalog{
		services: map[int64]*domain.Service{
			haircutID: {ID: haircutID, Name: "Haircut", DurationMinutes: 45, WaitingMinutes: intPtr(15), Price: decimal.RequireFromString("30"), IsActive: true},
			cutID:     {ID: cutID, Name: "Cut", DurationMinutes: 45, Price: decimal.RequireFromString("25"), IsActive: true},
		},
		timings: map[int64]*domain.StylistServiceTiming{},
	}
	f.uc = NewUseCase(users, catalog, fakeHours{}, f.patterns, f.appointments, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

func request(date time.Time, step int, services ...int64) *Request {
	req := &Request{StylistID: stylistID, Date: date, StepMinutes: step}
	for _, id := range services {
		req.Segments = append(req.Segments, validate_booking.SegmentRequest{ServiceID: id})
	}
	return req
}

func starts(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestExecute_SalonHoursWithoutPattern(t *testing.T) {
	f := newFixture(friday.Add(9 * time.Hour))

	resp, err := f.uc.Execute(context.Background(), request(monday, 60, haircutID))
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), resp.Slots[8].EndTime)
}

func TestExecute_BlockingAppointmentsRemoved(t *testing.T) {
	f := newFixture(friday.Add(9 * time.Hour))
	f.appointments.items = []*domain.Appointment{
		{ID: 1, StylistID: stylistID, Date: monday, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		{ID: 2, StylistID: stylistID, Date: monday, StartTime: "13:00", EndTime: "14:00", Status: domain.StatusCancelled},
	}

	resp, err := f.uc.Execute(context.Background(), request(monday, 60, haircutID))
	require.NoError(t, err)

	got := starts(resp.Slots)
	assert.Len(t, got, 8)
	assert.NotContains(t, got, types.TimeString("10:00"))
	// Смежные интервалы и отменённые записи не мешают
	assert.Contains(t, got, types.TimeString("09:00"))
	assert.Contains(t, got, types.TimeString("11:00"))
	assert.Contains(t, got, types.TimeString("13:00"))
}

func TestExecute_WorkPatternNarrowsWindow(t *testing.T) {
	f := newFixture(friday.Add(9 * time.Hour))
	f.patterns.pattern = &domain.WorkPattern{
		ID: 1, UserID: stylistID, IsActive: true,
		Schedule: map[string]domain.WorkDay{
			"monday": {Working: true, Start: "12:00", End: "20:00"},
		},
	}

	resp, err := f.uc.Execute(context.Background(), request(monday, 30, cutID))
	require.NoError(t, err)

	// 12:00-18:00, услуга 45 минут, шаг 30 минут
	assert.Equal(t, []types.TimeString{
		"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
		"15:00", "15:30", "16:00", "16:30", "17:00",
	}, starts(resp.Slots))
}

func TestExecute_NotWorkingDay(t *testing.T) {
	f := newFixture(friday.Add(9 * time.Hour))
	f.patterns.pattern = &domain.WorkPattern{
		ID: 1, UserID: stylistID, IsActive: true,
		Schedule: map[string]domain.WorkDay{"monday": {Working: false}},
	}

	resp, err := f.uc.Execute(context.Background(), request(monday, 0, cutID))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 45, resp.DurationMinutes)
}

func TestExecute_SalonClosed(t *testing.T) {
	f := newFixture(friday.Add(9 * time.Hour))

	resp, err := f.uc.Execute(context.Background(), request(sunday, 0, cutID))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(monday.Add(9 * time.Hour))

	resp, err := f.uc.Execute(context.Background(), request(friday, 0, cutID))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodaySkipsPastStarts(t *testing.T) {
	f := newFixture(friday.Add(10*time.Hour + 7*time.Minute))

	resp, err := f.uc.Execute(context.Background(), request(friday, 60, haircutID))
	require.NoError(t, err)

	got := starts(resp.Slots)
	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("11:00"), got[0])
	assert.Len(t, got, 7)
}

func TestExecute_TwoServicesSumDurations(t *testing.T) {
	f := newFixture(friday.Add(9 * time.Hour))

	resp, err := f.uc.Execute(context.Background(), request(monday, 0, haircutID, cutID))
	require.NoError(t, err)

	assert.Equal(t, 105, resp.DurationMinutes)
	require.NotEmpty(t, resp.Slots)
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.TimeString("16:15"), last.StartTime)
	assert.Equal(t, types.TimeString("18:00"), last.EndTime)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		check   func(t *testing.T, err error)
		listErr error
	}{
		{
			name: "unknown stylist",
			req:  &Request{StylistID: 99, Date: monday, Segments: []validate_booking.SegmentRequest{{ServiceID: cutID}}},
			check: func(t *testing.T, err error) {
				var missing *domain.MissingError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, domain.EntityStylist, missing.Entity)
			},
		},
		{
			name: "not a stylist",
			req:  &Request{StylistID: customerID, Date: monday, Segments: []validate_booking.SegmentRequest{{ServiceID: cutID}}},
			check: func(t *testing.T, err error) {
				var policy *domain.PolicyError
				require.ErrorAs(t, err, &policy)
				assert.Equal(t, domain.PolicyNotStylist, policy.Kind)
			},
		},
		{
			name: "unknown service",
			req:  request(monday, 0, 404),
			check: func(t *testing.T, err error) {
				var missing *domain.MissingError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, domain.EntityService, missing.Entity)
			},
		},
		{
			name: "bad step and no services",
			req:  &Request{StylistID: stylistID, Date: monday, StepMinutes: 1},
			check: func(t *testing.T, err error) {
				var list *domain.ErrorList
				require.ErrorAs(t, err, &list)
				assert.Equal(t, 2, list.Len())
			},
		},
		{
			name:    "repository failure",
			req:     request(monday, 0, cutID),
			listErr: errors.New("connection reset"),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInternal)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(friday.Add(9 * time.Hour))
			f.appointments.err = tt.listErr

			resp, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, resp)
			tt.check(t, err)
		})
	}
}
