package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workpatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	customerID = 1
	stylistID  = 2
	haircutID  = 10
	cutID      = 11
	colourID   = 12
)

var (
	now        = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) // пятница
	nextMonday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	nextSunday = time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeUsers struct {
	byID map[int64]*domain.User
	err  error
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeCatalog struct {
	services   map[int64]*domain.Service
	allowances []domain.StylistServiceAllowance
	timings    map[int64]*domain.StylistServiceTiming
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

func (f *fakeCatalog) ListActive(_ context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, id := range []int64{haircutID, cutID, colourID} {
		if s, ok := f.services[id]; ok && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListAllowances(_ context.Context, _ int64) ([]domain.StylistServiceAllowance, error) {
	return f.allowances, nil
}

func (f *fakeCatalog) ListTimings(_ context.Context, _ int64) (map[int64]*domain.StylistServiceTiming, error) {
	return f.timings, nil
}

type fakeHours struct {
	hours *domain.SalonHours
}

func (f *fakeHours) Get(_ context.Context) (*domain.SalonHours, error) {
	return f.hours, nil
}

type fakePatterns struct {
	pattern *domain.WorkPattern
}

func (f *fakePatterns) GetActiveByUser(_ context.Context, _ int64) (*domain.WorkPattern, error) {
	if f.pattern == nil {
		return nil, workpatternRepo.ErrNotFound
	}
	return f.pattern, nil
}

type fakeAppointments struct {
	items []*domain.Appointment
}

func (f *fakeAppointments) ListBlocking(_ context.Context, _ int64, date time.Time, excludeID int64) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.items {
		if a.Date.Equal(date) && a.ID != excludeID && a.BlocksSlot() {
			out = append(out, a)
		}
	}
	return out, nil
}

type fixture struct {
	users        *fakeUsers
	catalog      *fakeCatalog
	hours        *fakeHours
	patterns     *fakePatterns
	appointments *fakeAppointments
	validator    *Validator
}

func intPtr(v int) *int { return &v }

func newFixture() *fixture {
	f := &fixture{
		users: &fakeUsers{byID: map[int64]*domain.User{
			customerID: {ID: customerID, IsActive: true, Roles: []domain.Role{{Name: domain.RoleCustomer, Level: domain.LevelCustomer}}},
			stylistID:  {ID: stylistID, IsActive: true, Roles: []domain.Role{{Name: domain.RoleStylist, Level: domain.LevelStylist}}},
		}},
		catalog: &fakeCatalog{
			services: map[int64]*domain.Service{
				haircutID: {ID: haircutID, Name: "Haircut", DurationMinutes: 45, WaitingMinutes: intPtr(15), Price: decimal.RequireFromString("30"), IsActive: true},
				cutID:     {ID: cutID, Name: "Cut", DurationMinutes: 45, Price: decimal.RequireFromString("25"), IsActive: true},
				colourID:  {ID: colourID, Name: "Colour", DurationMinutes: 90, Price: decimal.RequireFromString("70"), IsActive: true},
			},
			timings: map[int64]*domain.StylistServiceTiming{},
		},
		hours:        &fakeHours{hours: domain.DefaultSalonHours()},
		patterns:     &fakePatterns{},
		appointments: &fakeAppointments{},
	}
	f.validator = NewValidator(f.users, f.catalog, f.hours, f.patterns, f.appointments, time.UTC, logger.NewNop())
	f.validator.timeProvider = fixedTime{t: now}
	return f
}

func booking(start string, services ...int64) Input {
	in := Input{CustomerID: customerID, StylistID: stylistID, BookedByID: customerID, Date: nextMonday, StartTime: types.TimeString(start)}
	for _, id := range services {
		in.Segments = append(in.Segments, SegmentRequest{ServiceID: id})
	}
	return in
}

func policyKinds(t *testing.T, err error) []string {
	t.Helper()
	var list *domain.ErrorList
	require.ErrorAs(t, err, &list)
	var kinds []string
	for _, e := range list.Errors {
		switch typed := e.(type) {
		case *domain.PolicyError:
			kinds = append(kinds, typed.Kind)
		case *domain.ValidationError:
			kinds = append(kinds, "validation:"+typed.Field)
		}
	}
	return kinds
}

func TestValidate_SimpleBooking(t *testing.T) {
	f := newFixture()

	res, err := f.validator.Validate(context.Background(), booking("10:00", haircutID))
	require.NoError(t, err)
	assert.Equal(t, "11:00", res.EndTime.String())
	require.Len(t, res.Segments, 1)
	assert.Equal(t, 0, res.Segments[0].Order)
	assert.Equal(t, 45, res.Segments[0].DurationMinutes)
	assert.Equal(t, 15, res.Segments[0].WaitingMinutes)
	assert.Equal(t, "Haircut", res.Segments[0].ServiceName)
	assert.Empty(t, res.Warnings)
}

func TestValidate_SegmentsInOrder(t *testing.T) {
	f := newFixture()

	res, err := f.validator.Validate(context.Background(), booking("09:00", colourID, haircutID))
	require.NoError(t, err)
	assert.Equal(t, "11:30", res.EndTime.String())
	require.Len(t, res.Segments, 2)
	assert.Equal(t, int64(colourID), res.Segments[0].ServiceID)
	assert.Equal(t, 1, res.Segments[1].Order)
}

func TestValidate_Conflict(t *testing.T) {
	f := newFixture()
	f.appointments.items = []*domain.Appointment{{
		ID: 100, StylistID: stylistID, Date: nextMonday, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed,
	}}

	_, err := f.validator.Validate(context.Background(), booking("10:30", cutID))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.EntityStylist, conflict.Resource)
	assert.Equal(t, "10:30-11:15", conflict.Window)

	// соседний интервал не пересекается
	_, err = f.validator.Validate(context.Background(), booking("11:00", cutID))
	assert.NoError(t, err)

	// запись не конфликтует сама с собой при правке
	in := booking("10:30", cutID)
	in.ExcludeAppointmentID = 100
	_, err = f.validator.Validate(context.Background(), in)
	assert.NoError(t, err)
}

func TestValidate_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.appointments.items = []*domain.Appointment{{
		ID: 100, StylistID: stylistID, Date: nextMonday, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusCancelled,
	}}

	_, err := f.validator.Validate(context.Background(), booking("10:00", haircutID))
	assert.NoError(t, err)
}

func TestValidate_StylistOverride(t *testing.T) {
	f := newFixture()
	f.catalog.timings[cutID] = &domain.StylistServiceTiming{StylistID: stylistID, ServiceID: cutID, CustomDurationMinutes: intPtr(30), IsActive: true}

	in := booking("10:00", cutID)
	in.Segments[0].UseOverride = true
	res, err := f.validator.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "10:30", res.EndTime.String())

	res, err = f.validator.Validate(context.Background(), booking("10:00", cutID))
	require.NoError(t, err)
	assert.Equal(t, "10:45", res.EndTime.String())
}

func TestValidate_OpeningBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		wantErr bool
	}{
		{name: "starts at opening", start: "09:00"},
		{name: "ends at closing", start: "17:15"},
		{name: "one minute beyond closing", start: "17:16", wantErr: true},
		{name: "one minute before opening", start: "08:59", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.validator.Validate(context.Background(), booking(tt.start, cutID))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{domain.PolicyOutsideOpeningHours}, policyKinds(t, err))
		})
	}
}

func TestValidate_EmergencyExtension(t *testing.T) {
	f := newFixture()
	in := booking("17:30", cutID)
	in.Emergency = true

	res, err := f.validator.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)

	// флаг вызывающего без разрешения салона не помогает
	f.hours.hours.EmergencyExtensionEnabled = false
	_, err = f.validator.Validate(context.Background(), in)
	assert.Equal(t, []string{domain.PolicyOutsideOpeningHours}, policyKinds(t, err))
}

func TestValidate_SalonClosed(t *testing.T) {
	f := newFixture()
	in := booking("10:00", cutID)
	in.Date = nextSunday

	_, err := f.validator.Validate(context.Background(), in)
	assert.Equal(t, []string{domain.PolicySalonClosed}, policyKinds(t, err))
}

func TestValidate_WorkPattern(t *testing.T) {
	f := newFixture()
	day := domain.WorkDay{Working: true, Start: "12:00", End: "18:00"}
	f.patterns.pattern = &domain.WorkPattern{UserID: stylistID, IsActive: true, Schedule: map[string]domain.WorkDay{"monday": day}}

	_, err := f.validator.Validate(context.Background(), booking("10:00", cutID))
	assert.Equal(t, []string{domain.PolicyOutsideWorkPattern}, policyKinds(t, err))

	in := booking("10:00", cutID)
	in.OverrideWorkPattern = true
	res, err := f.validator.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 1)

	_, err = f.validator.Validate(context.Background(), booking("12:00", cutID))
	assert.NoError(t, err)
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	f := newFixture()
	f.users.byID[stylistID].Roles = []domain.Role{{Name: domain.RoleCustomer, Level: domain.LevelCustomer}}
	f.catalog.allowances = []domain.StylistServiceAllowance{{StylistID: stylistID, ServiceID: haircutID, IsAllowed: true}}

	in := booking("17:30", cutID)
	in.Date = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	_, err := f.validator.Validate(context.Background(), in)
	assert.Equal(t, []string{
		"validation:date",
		domain.PolicyNotStylist,
		domain.PolicyServiceNotAllowed,
		domain.PolicyOutsideOpeningHours,
	}, policyKinds(t, err))
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(err))
}

func TestValidate_EndPastMidnight(t *testing.T) {
	f := newFixture()

	_, err := f.validator.Validate(context.Background(), booking("23:30", colourID))
	assert.Equal(t, []string{"validation:end_time"}, policyKinds(t, err))
}

func TestValidate_InputErrors(t *testing.T) {
	f := newFixture()

	_, err := f.validator.Validate(context.Background(), booking("10:00"))
	assert.Equal(t, []string{"validation:services"}, policyKinds(t, err))

	_, err = f.validator.Validate(context.Background(), booking("25:00", cutID))
	assert.Equal(t, []string{"validation:start_time"}, policyKinds(t, err))

	_, err = f.validator.Validate(context.Background(), booking("10:00", 999))
	var missing *domain.MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.EntityService, missing.Entity)

	in := booking("10:00", cutID)
	in.StylistID = 404
	_, err = f.validator.Validate(context.Background(), in)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.EntityStylist, missing.Entity)
}

func TestValidate_UserReadKeepsDriverError(t *testing.T) {
	f := newFixture()
	f.users.err = &pq.Error{Code: "40001"}

	_, err := f.validator.Validate(context.Background(), booking("10:00", haircutID))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	// конфликт сериализации должен дойти до менеджера транзакций
	assert.True(t, txmanager.IsRetryable(err))
}
