package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeRepo struct {
	items map[int64]*domain.Appointment
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for id := int64(1); id <= int64(len(f.items)); id++ {
		a := f.items[id]
		if filter.StylistID != nil && a.StylistID != *filter.StylistID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.items[id].Status = status
	return nil
}

func (f *fakeRepo) AddStatusChange(_ context.Context, change *domain.StatusChange) error {
	return nil
}

type fakeUsers struct {
	byID map[int64]*domain.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeCosts struct {
	calls []int64
}

func (f *fakeCosts) Calculate(_ context.Context, a *domain.Appointment) (*domain.AppointmentCost, error) {
	f.calls = append(f.calls, a.ID)
	return &domain.AppointmentCost{AppointmentID: a.ID}, nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	transitions []string
}

func (f *fakeMetrics) StatusTransition(from, to string) {
	f.transitions = append(f.transitions, from+"->"+to)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

const (
	customerID = 1
	stylistID  = 2
	otherID    = 3
)

type fixture struct {
	svc     *Service
	repo    *fakeRepo
	costs   *fakeCosts
	metrics *fakeMetrics
}

func newFixture() *fixture {
	repo := &fakeRepo{items: make(map[int64]*domain.Appointment)}
	customer := []domain.Role{{Name: domain.RoleCustomer, Level: domain.LevelCustomer}}
	users := &fakeUsers{byID: map[int64]*domain.User{
		customerID: {ID: customerID, IsActive: true, Roles: customer},
		stylistID:  {ID: stylistID, IsActive: true, Roles: []domain.Role{{Name: domain.RoleStylist, Level: domain.LevelStylist}}},
		otherID:    {ID: otherID, IsActive: true, Roles: customer},
	}}
	costs := &fakeCosts{}
	m := &fakeMetrics{}

	svc := NewService(repo, users, costs, fakeTx{}, m, time.UTC, logger.NewNop())
	svc.timeProvider = fixedTime{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	return &fixture{svc: svc, repo: repo, costs: costs, metrics: m}
}

func (f *fixture) add(date time.Time, status domain.AppointmentStatus) *domain.Appointment {
	a := &domain.Appointment{
		ID:         int64(len(f.repo.items) + 1),
		CustomerID: customerID,
		StylistID:  stylistID,
		BookedByID: customerID,
		Date:       date,
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     status,
	}
	f.repo.items[a.ID] = a
	return a
}

var nextMonday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestService_CompleteComputesCost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.add(nextMonday, domain.StatusConfirmed)

	require.NoError(t, f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: a.ID, Status: domain.StatusCompleted, ActorID: stylistID}))
	assert.Equal(t, domain.StatusCompleted, a.Status)
	assert.Equal(t, []int64{a.ID}, f.costs.calls)
	require.Len(t, a.History, 1)
	assert.Equal(t, domain.StatusCompleted, a.History[0].Status)

	// повторное сохранение в completed пересчитывает стоимость
	require.NoError(t, f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: a.ID, Status: domain.StatusCompleted, ActorID: stylistID}))
	assert.Equal(t, domain.StatusCompleted, a.Status)
	assert.Len(t, f.costs.calls, 2)
	assert.Len(t, a.History, 2)

	assert.Equal(t, []string{"confirmed->completed", "completed->completed"}, f.metrics.transitions)
}

func TestService_Reopen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.add(nextMonday, domain.StatusCompleted)

	err := f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: a.ID, Status: domain.StatusConfirmed, ActorID: customerID})
	var policyErr *domain.PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, domain.PolicyForbiddenActor, policyErr.Kind)
	assert.Equal(t, domain.StatusCompleted, a.Status)

	require.NoError(t, f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: a.ID, Status: domain.StatusConfirmed, ActorID: stylistID}))
	assert.Equal(t, domain.StatusConfirmed, a.Status)
	assert.Empty(t, f.costs.calls)
}

func TestService_IllegalTransitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		from domain.AppointmentStatus
		to   domain.AppointmentStatus
	}{
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: domain.StatusCompleted},
		{name: "no-show is terminal", from: domain.StatusNoShow, to: domain.StatusConfirmed},
		{name: "completed cannot be no-show", from: domain.StatusCompleted, to: domain.StatusNoShow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := f.add(nextMonday, tt.from)
			err := f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: a.ID, Status: tt.to, ActorID: stylistID})
			assert.Equal(t, domain.KindState, domain.ErrorKind(err))
			assert.Equal(t, tt.from, a.Status)
		})
	}

	err := f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: 404, Status: domain.StatusCompleted, ActorID: stylistID})
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))

	err = f.svc.UpdateStatus(ctx, UpdateStatusRequest{AppointmentID: 1, Status: domain.StatusCompleted, ActorID: 404})
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))
}

func TestService_Cancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.add(nextMonday, domain.StatusConfirmed)

	err := f.svc.Cancel(ctx, a.ID, otherID)
	var policyErr *domain.PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, domain.PolicyForbiddenActor, policyErr.Kind)

	require.NoError(t, f.svc.Cancel(ctx, a.ID, customerID))
	assert.Equal(t, domain.StatusCancelled, a.Status)

	err = f.svc.Cancel(ctx, a.ID, customerID)
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "cancelled", stateErr.From)

	past := f.add(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), domain.StatusConfirmed)
	err = f.svc.Cancel(ctx, past.ID, stylistID)
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, domain.PolicyAppointmentInPast, policyErr.Kind)

	// сегодняшнюю запись ещё можно отменить
	today := f.add(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), domain.StatusConfirmed)
	assert.NoError(t, f.svc.Cancel(ctx, today.ID, stylistID))

	assert.Equal(t, []string{"confirmed->cancelled", "confirmed->cancelled"}, f.metrics.transitions)
}

func TestService_List(t *testing.T) {
	f := newFixture()
	f.add(nextMonday, domain.StatusConfirmed)
	f.add(nextMonday, domain.StatusCancelled)

	stylist := int64(stylistID)
	list, err := f.svc.List(context.Background(), domain.AppointmentFilter{StylistID: &stylist})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	from := nextMonday
	to := nextMonday.AddDate(0, 0, -1)
	_, err = f.svc.List(context.Background(), domain.AppointmentFilter{DateFrom: &from, DateTo: &to})
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(err))
}
