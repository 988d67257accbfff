package costs

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	costRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/cost"
	employmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/employment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var day = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeAppointments struct {
	items map[int64]*domain.Appointment
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointments) ListCompletedWithoutCost(_ context.Context, _ uint64) ([]int64, error) {
	var ids []int64
	for id := int64(1); id <= int64(len(f.items)); id++ {
		if a, ok := f.items[id]; ok && a.Status == domain.StatusCompleted {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeEmployment struct {
	terms map[int64]*domain.EmploymentTerms
}

func (f *fakeEmployment) GetByUser(_ context.Context, userID int64) (*domain.EmploymentTerms, error) {
	t, ok := f.terms[userID]
	if !ok {
		return nil, employmentRepo.ErrNotFound
	}
	return t, nil
}

type fakeBilling struct {
	elements []*domain.BillingElement
}

func (f *fakeBilling) ListActive(_ context.Context) ([]*domain.BillingElement, error) {
	return f.elements, nil
}

type fakeCosts struct {
	byAppointment map[int64]*domain.AppointmentCost
	appointments  *fakeAppointments
}

func (f *fakeCosts) Upsert(_ context.Context, c *domain.AppointmentCost) error {
	f.byAppointment[c.AppointmentID] = c
	return nil
}

func (f *fakeCosts) GetByAppointment(_ context.Context, appointmentID int64) (*domain.AppointmentCost, error) {
	c, ok := f.byAppointment[appointmentID]
	if !ok {
		return nil, costRepo.ErrCostNotFound
	}
	return c, nil
}

func (f *fakeCosts) ListForReport(_ context.Context, filter domain.CostFilter) ([]domain.CostReportRow, error) {
	var rows []domain.CostReportRow
	for id := int64(1); id <= int64(len(f.appointments.items)); id++ {
		a := f.appointments.items[id]
		c, ok := f.byAppointment[id]
		if !ok || a.Status != domain.StatusCompleted {
			continue
		}
		if a.Date.Before(filter.From) || a.Date.After(filter.To) {
			continue
		}
		if filter.StylistID != nil && a.StylistID != *filter.StylistID {
			continue
		}
		if filter.Method != nil && c.Method != *filter.Method {
			continue
		}
		rows = append(rows, domain.CostReportRow{Cost: *c, StylistID: a.StylistID, Date: a.Date, DurationMinutes: a.DurationMinutes()})
	}
	return rows, nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	calculated map[string]int
}

func (f *fakeMetrics) CostCalculated(method string) { f.calculated[method]++ }

type fixture struct {
	svc          *Service
	appointments *fakeAppointments
	costs        *fakeCosts
	metrics      *fakeMetrics
}

func newFixture() *fixture {
	appointments := &fakeAppointments{items: make(map[int64]*domain.Appointment)}
	employment := &fakeEmployment{terms: map[int64]*domain.EmploymentTerms{
		10: {UserID: 10, Type: domain.EmploymentSelfEmployed, CommissionRate: decPtr("70"), BillingMethod: "split"},
		20: {UserID: 20, Type: domain.EmploymentEmployed, HourlyRate: decPtr("15")},
	}}
	billing := &fakeBilling{elements: []*domain.BillingElement{
		{Name: "Color", Percentage: dec("25"), IsActive: true},
		{Name: "Electric", Percentage: dec("15"), IsActive: true},
	}}
	costs := &fakeCosts{byAppointment: make(map[int64]*domain.AppointmentCost), appointments: appointments}
	m := &fakeMetrics{calculated: make(map[string]int)}

	return &fixture{
		svc:          NewService(appointments, employment, billing, costs, fakeTx{}, m, logger.NewNop()),
		appointments: appointments,
		costs:        costs,
		metrics:      m,
	}
}

func (f *fixture) add(stylistID int64, start, end types.TimeString, status domain.AppointmentStatus, price string) *domain.Appointment {
	a := &domain.Appointment{
		ID:        int64(len(f.appointments.items) + 1),
		StylistID: stylistID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	a.Segments = []domain.Segment{{ServiceID: 1, DurationMinutes: a.DurationMinutes(), Price: dec(price)}}
	f.appointments.items[a.ID] = a
	return a
}

func TestService_ComputeCostCommission(t *testing.T) {
	f := newFixture()
	a := f.add(10, "10:00", "11:00", domain.StatusCompleted, "100")

	cost, err := f.svc.ComputeCost(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, cost)

	assert.Equal(t, domain.MethodCommission, cost.Method)
	assert.Equal(t, "70", cost.StylistCost.String())
	assert.Equal(t, "30", cost.SalonProfit.String())
	assert.Equal(t, "17.5", cost.BillingElementsApplied["Color"].CommissionPortion.String())
	assert.Equal(t, 1, f.metrics.calculated["commission"])

	stored, err := f.svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Same(t, cost, stored)
}

func TestService_ComputeCostEdgeCases(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	noTerms := f.add(99, "10:00", "11:00", domain.StatusCompleted, "50")
	cost, err := f.svc.ComputeCost(ctx, noTerms.ID)
	require.NoError(t, err)
	assert.Nil(t, cost)
	assert.Empty(t, f.costs.byAppointment)

	confirmed := f.add(10, "12:00", "13:00", domain.StatusConfirmed, "50")
	_, err = f.svc.ComputeCost(ctx, confirmed.ID)
	assert.Equal(t, domain.KindState, domain.ErrorKind(err))

	_, err = f.svc.ComputeCost(ctx, 404)
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))

	_, err = f.svc.Get(ctx, noTerms.ID)
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))

	broken := f.add(10, "14:00", "15:00", domain.StatusCompleted, "50")
	broken.Segments[0].DurationMinutes = 30
	_, err = f.svc.ComputeCost(ctx, broken.ID)
	assert.Equal(t, domain.KindInvariant, domain.ErrorKind(err))
}

func TestService_Reports(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(10, "09:00", "10:00", domain.StatusCompleted, "100") // комиссия 70.00
	f.add(20, "10:00", "11:30", domain.StatusCompleted, "45")  // почасовая 22.50
	f.add(20, "12:00", "12:30", domain.StatusCompleted, "20")  // почасовая 7.50
	f.add(99, "13:00", "14:00", domain.StatusCompleted, "80")  // без условий
	f.add(10, "15:00", "16:00", domain.StatusCancelled, "500")

	created, err := f.svc.Backfill(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	earnings, err := f.svc.StylistEarnings(ctx, 20, day, day)
	require.NoError(t, err)
	assert.Equal(t, "30", earnings.TotalEarnings.String())
	assert.Equal(t, "2", earnings.TotalHours.String())
	assert.Equal(t, 2, earnings.AppointmentCount)

	profit, err := f.svc.SalonProfit(ctx, day, day)
	require.NoError(t, err)
	assert.Equal(t, "165", profit.Revenue.String())
	assert.Equal(t, "100", profit.StylistCost.String())
	assert.Equal(t, "65", profit.Profit.String())
	assert.Equal(t, 3, profit.AppointmentCount)
	assert.Equal(t, "39.39", profit.MarginPercent.String())

	// аддитивность: сумма прибыли по записям равна итогу за период
	sum := decimal.Zero
	for _, c := range f.costs.byAppointment {
		sum = sum.Add(c.SalonProfit)
	}
	assert.True(t, sum.Equal(profit.Profit))

	commission, err := f.svc.CommissionSummary(ctx, day, day)
	require.NoError(t, err)
	assert.Equal(t, 1, commission.AppointmentCount)
	require.Len(t, commission.ByStylist, 1)
	assert.Equal(t, int64(10), commission.ByStylist[0].StylistID)
	assert.Equal(t, "70", commission.ByStylist[0].Commission.String())

	_, err = f.svc.SalonProfit(ctx, day, day.AddDate(0, 0, -1))
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(err))
}
