package holidays

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/holiday"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workPatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type quotaKey struct {
	userID int64
	year   int
}

type fakeRepo struct {
	quotas   map[quotaKey]*domain.HolidayQuota
	requests []*domain.HolidayRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{quotas: make(map[quotaKey]*domain.HolidayQuota)}
}

func (f *fakeRepo) GetQuota(_ context.Context, userID int64, year int) (*domain.HolidayQuota, error) {
	q, ok := f.quotas[quotaKey{userID, year}]
	if !ok {
		return nil, holidayRepo.ErrQuotaNotFound
	}
	return q, nil
}

func (f *fakeRepo) CreateQuota(_ context.Context, q *domain.HolidayQuota) error {
	key := quotaKey{q.UserID, q.Year}
	if _, ok := f.quotas[key]; ok {
		return holidayRepo.ErrQuotaExists
	}
	q.ID = int64(len(f.quotas) + 1)
	f.quotas[key] = q
	return nil
}

func (f *fakeRepo) UpdateQuotaTaken(_ context.Context, q *domain.HolidayQuota) error {
	f.quotas[quotaKey{q.UserID, q.Year}] = q
	return nil
}

func (f *fakeRepo) CreateRequest(_ context.Context, req *domain.HolidayRequest) error {
	req.ID = int64(len(f.requests) + 1)
	f.requests = append(f.requests, req)
	return nil
}

func (f *fakeRepo) GetRequest(_ context.Context, id int64) (*domain.HolidayRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, holidayRepo.ErrRequestNotFound
}

func (f *fakeRepo) ListBlocking(_ context.Context, userID int64, from, to time.Time) ([]*domain.HolidayRequest, error) {
	var out []*domain.HolidayRequest
	for _, r := range f.requests {
		if r.UserID == userID && r.BlocksDates() && !from.After(r.EndDate) && !r.StartDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUserYear(_ context.Context, userID int64, year int) ([]*domain.HolidayRequest, error) {
	var out []*domain.HolidayRequest
	for _, r := range f.requests {
		if r.UserID == userID && r.StartDate.Year() == year {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateDecision(_ context.Context, req *domain.HolidayRequest) error {
	return nil
}

type fakePatterns struct {
	byUser map[int64]*domain.WorkPattern
}

func (f *fakePatterns) GetActiveByUser(_ context.Context, userID int64) (*domain.WorkPattern, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, workPatternRepo.ErrNotFound
	}
	return p, nil
}

func (f *fakePatterns) ListActive(_ context.Context) ([]*domain.WorkPattern, error) {
	var out []*domain.WorkPattern
	for id := int64(1); id <= 10; id++ {
		if p, ok := f.byUser[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
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

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	decisions []string
}

func (f *fakeMetrics) HolidayDecision(decision string) { f.decisions = append(f.decisions, decision) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func patternWithDailyHours(userID int64, start, end string) *domain.WorkPattern {
	schedule := make(map[string]domain.WorkDay)
	for _, d := range calendar.Weekdays[:5] {
		schedule[d] = domain.WorkDay{Working: true, Start: types.TimeString(start), End: types.TimeString(end)}
	}
	return &domain.WorkPattern{UserID: userID, Name: "pattern", Schedule: schedule, IsActive: true}
}

type fixture struct {
	svc     *Service
	repo    *fakeRepo
	metrics *fakeMetrics
}

// пользователи: 1 - 40 ч/нед, 2 - 20 ч/нед, 3 - 30 ч/нед, 4 - без графика, 9 - менеджер
func newFixture() *fixture {
	repo := newFakeRepo()
	patterns := &fakePatterns{byUser: map[int64]*domain.WorkPattern{
		1: patternWithDailyHours(1, "09:00", "17:00"),
		2: patternWithDailyHours(2, "09:00", "13:00"),
		3: patternWithDailyHours(3, "09:00", "15:00"),
	}}
	stylist := []domain.Role{{Name: domain.RoleStylist, Level: domain.LevelStylist}}
	users := &fakeUsers{byID: map[int64]*domain.User{
		1: {ID: 1, IsActive: true, Roles: stylist},
		2: {ID: 2, IsActive: true, Roles: stylist},
		3: {ID: 3, IsActive: true, Roles: stylist},
		4: {ID: 4, IsActive: true, Roles: stylist},
		9: {ID: 9, IsActive: true, Roles: []domain.Role{{Name: domain.RoleManager, Level: domain.LevelManager}}},
	}}
	m := &fakeMetrics{}

	svc := NewService(repo, patterns, users, fakeTx{}, m, DefaultPolicy(), logger.NewNop())
	svc.timeProvider = fixedTime{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	return &fixture{svc: svc, repo: repo, metrics: m}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Entitlement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		userID int64
		want   string
	}{
		{userID: 1, want: "28"},
		{userID: 2, want: "15"},
		{userID: 3, want: "22.5"},
		{userID: 4, want: "0"},
	}
	for _, tt := range tests {
		got, err := f.svc.Entitlement(ctx, tt.userID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "user=%d", tt.userID)
	}
}

func TestService_SubmitAndApprove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 10, 19), To: date(2026, 10, 23)})
	require.NoError(t, err)
	assert.Equal(t, domain.HolidayPending, req.Status)
	assert.Equal(t, 5, req.WorkingDays)

	require.NoError(t, f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 9, Decision: domain.DecisionApprove}))
	assert.Equal(t, domain.HolidayApproved, req.Status)
	require.NotNil(t, req.ApprovedBy)
	assert.Equal(t, int64(9), *req.ApprovedBy)

	quota, err := f.svc.Quota(ctx, 1, 2026)
	require.NoError(t, err)
	assert.Equal(t, "5", quota.DaysTaken.String())
	assert.Equal(t, "23", quota.DaysRemaining().String())
	assert.True(t, quota.DaysTaken.Add(quota.DaysRemaining()).Equal(quota.DaysEntitled))

	// повторное решение по уже одобренной заявке
	err = f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 9, Decision: domain.DecisionReject})
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "approved", stateErr.From)
	assert.Equal(t, "5", quota.DaysTaken.String())
	assert.Equal(t, []string{"approve"}, f.metrics.decisions)
}

func TestService_RejectLeavesQuota(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, SubmitRequest{UserID: 2, From: date(2026, 11, 2), To: date(2026, 11, 3)})
	require.NoError(t, err)

	require.NoError(t, f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 9, Decision: domain.DecisionReject, Notes: "busy week"}))
	assert.Equal(t, domain.HolidayRejected, req.Status)
	assert.Equal(t, "busy week", req.DecisionNotes)

	quota, err := f.svc.Quota(ctx, 2, 2026)
	require.NoError(t, err)
	assert.True(t, quota.DaysTaken.IsZero())

	// отклонённая заявка больше не блокирует даты
	_, err = f.svc.Submit(ctx, SubmitRequest{UserID: 2, From: date(2026, 11, 2), To: date(2026, 11, 3)})
	assert.NoError(t, err)
}

func TestService_SubmitAccumulatesErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 10, 19), To: date(2026, 10, 20)})
	require.NoError(t, err)

	// в прошлом, пересекается с ожидающей заявкой и превышает квоту
	_, err = f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 10, 12), To: date(2026, 12, 31)})
	var list *domain.ErrorList
	require.ErrorAs(t, err, &list)
	require.Equal(t, 3, list.Len())
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(list.Errors[0]))
	assert.Equal(t, domain.PolicyInsufficientQuota, list.Errors[1].(*domain.PolicyError).Kind)
	assert.Equal(t, domain.PolicyHolidayOverlap, list.Errors[2].(*domain.PolicyError).Kind)

	// выходные: нет рабочих дней
	_, err = f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 10, 24), To: date(2026, 10, 25)})
	require.ErrorAs(t, err, &list)
	assert.Equal(t, domain.PolicyNoWorkingDays, list.Errors[0].(*domain.PolicyError).Kind)

	// без графика квота нулевая
	_, err = f.svc.Submit(ctx, SubmitRequest{UserID: 4, From: date(2026, 10, 19), To: date(2026, 10, 19)})
	require.ErrorAs(t, err, &list)
	assert.Equal(t, domain.PolicyInsufficientQuota, list.Errors[0].(*domain.PolicyError).Kind)

	_, err = f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 10, 23), To: date(2026, 10, 22)})
	require.ErrorAs(t, err, &list)
	assert.Equal(t, 1, list.Len())

	_, err = f.svc.Submit(ctx, SubmitRequest{UserID: 77, From: date(2026, 10, 19), To: date(2026, 10, 19)})
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))
}

func TestService_StraddlingRequestChargesStartingYear(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 12, 28), To: date(2027, 1, 5)})
	require.NoError(t, err)
	assert.Equal(t, 7, req.WorkingDays)

	require.NoError(t, f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 9, Decision: domain.DecisionApprove}))

	q2026, err := f.svc.Quota(ctx, 1, 2026)
	require.NoError(t, err)
	assert.Equal(t, "7", q2026.DaysTaken.String())

	q2027, err := f.svc.Quota(ctx, 1, 2027)
	require.NoError(t, err)
	assert.True(t, q2027.DaysTaken.IsZero())
}

func TestService_DecideGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, err := f.svc.Submit(ctx, SubmitRequest{UserID: 1, From: date(2026, 10, 19), To: date(2026, 10, 19)})
	require.NoError(t, err)

	var policyErr *domain.PolicyError
	err = f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 2, Decision: domain.DecisionApprove})
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, domain.PolicyForbiddenActor, policyErr.Kind)

	err = f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 9, Decision: "maybe"})
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(err))

	err = f.svc.Decide(ctx, DecideRequest{RequestID: 404, ActorID: 9, Decision: domain.DecisionApprove})
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))

	// квоту уменьшили после подачи заявки
	quota, err := f.svc.Quota(ctx, 1, 2026)
	require.NoError(t, err)
	quota.DaysTaken = decimal.NewFromInt(28)
	err = f.svc.Decide(ctx, DecideRequest{RequestID: req.ID, ActorID: 9, Decision: domain.DecisionApprove})
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, domain.PolicyInsufficientQuota, policyErr.Kind)
	assert.Equal(t, domain.HolidayPending, req.Status)
}

func TestService_EnsureQuotas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.EnsureQuotas(ctx, 2027)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	q, err := f.svc.Quota(ctx, 2, 2027)
	require.NoError(t, err)
	assert.Equal(t, "20", q.TotalHoursPerWeek.String())
	assert.Equal(t, "15", q.DaysEntitled.String())

	created, err = f.svc.EnsureQuotas(ctx, 2027)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
