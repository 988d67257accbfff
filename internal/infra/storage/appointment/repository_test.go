package appointment_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	employmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/employment"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// setupTestDB запускает PostgreSQL в контейнере и применяет миграции
func setupTestDB(t *testing.T) *dbmetrics.DB {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("salon_test"),
		postgres.WithUsername("salon"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(url, logger.NewNop()))

	db, err := sql.Open("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return dbmetrics.Wrap(db, nil)
}

type fixture struct {
	db        *dbmetrics.DB
	repo      *appointmentRepo.Repository
	txManager *txmanager.TransactionManager
	customer  int64
	stylist   int64
	service   *domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	ctx := context.Background()

	users := userRepo.NewRepository(db)
	customer, err := users.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com", FullName: "Alice", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, users.AssignRole(ctx, customer.ID, domain.RoleCustomer))

	stylist, err := users.Create(ctx, &domain.User{Username: "sam", Email: "sam@example.com", FullName: "Sam", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, users.AssignRole(ctx, stylist.ID, domain.RoleStylist))

	loaded, err := users.GetByID(ctx, stylist.ID)
	require.NoError(t, err)
	require.True(t, loaded.CanStyle())

	svc, err := catalogRepo.NewRepository(db).Create(ctx, &domain.Service{
		Name: "Cut", DurationMinutes: 30, Price: decimal.RequireFromString("25.00"), IsActive: true,
	})
	require.NoError(t, err)

	return &fixture{
		db:        db,
		repo:      appointmentRepo.NewRepository(db),
		txManager: txmanager.NewTransactionManager(db),
		customer:  customer.ID,
		stylist:   stylist.ID,
		service:   svc,
	}
}

var day = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

func (f *fixture) appointment(start, end string) *domain.Appointment {
	return &domain.Appointment{
		CustomerID: f.customer,
		StylistID:  f.stylist,
		BookedByID: f.customer,
		Date:       day,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Status:     domain.StatusConfirmed,
		Segments: []domain.Segment{{
			ServiceID:       f.service.ID,
			ServiceName:     f.service.Name,
			Order:           0,
			DurationMinutes: 30,
			Price:           f.service.Price,
		}},
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.appointment("10:00", "10:30")
	created, err := f.repo.Create(ctx, a)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	require.NoError(t, f.repo.AddStatusChange(ctx, &domain.StatusChange{
		AppointmentID: created.ID, Status: domain.StatusConfirmed, Notes: "booked", ChangedBy: f.customer,
	}))

	got, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00-10:30", got.Window().String())
	require.Len(t, got.Segments, 1)
	assert.True(t, got.Segments[0].Price.Equal(decimal.RequireFromString("25")))
	require.Len(t, got.History, 1)
	assert.Equal(t, domain.StatusConfirmed, got.History[0].Status)

	_, err = f.repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)
}

func TestRepository_OverlapRejectedByConstraint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.appointment("10:00", "10:30")
	_, err := f.repo.Create(ctx, first)
	require.NoError(t, err)

	overlapping := f.appointment("10:15", "10:45")
	_, err = f.repo.Create(ctx, overlapping)
	assert.ErrorIs(t, err, appointmentRepo.ErrSlotConflict)

	// Смежные интервалы не пересекаются
	adjacent := f.appointment("10:30", "11:00")
	_, err = f.repo.Create(ctx, adjacent)
	require.NoError(t, err)

	blocking, err := f.repo.ListBlocking(ctx, f.stylist, day, 0)
	require.NoError(t, err)
	assert.Len(t, blocking, 2)

	// Отменённая запись освобождает интервал
	require.NoError(t, f.repo.UpdateStatus(ctx, first.ID, domain.StatusCancelled))
	_, err = f.repo.Create(ctx, overlapping)
	require.NoError(t, err)
}

func TestRepository_ConcurrentBookingSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	errConflict := errors.New("slot taken")

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
				if err := f.repo.LockStylistDay(txCtx, f.stylist, day); err != nil {
					return err
				}
				a := f.appointment("14:00", "14:30")

				existing, err := f.repo.ListBlocking(txCtx, f.stylist, day, 0)
				if err != nil {
					return err
				}
				for _, e := range existing {
					if e.Window().Overlaps(a.Window()) {
						return errConflict
					}
				}
				if _, err := f.repo.Create(txCtx, a); err != nil {
					if errors.Is(err, appointmentRepo.ErrSlotConflict) {
						return errConflict
					}
					return err
				}
				return nil
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	blocking, err := f.repo.ListBlocking(ctx, f.stylist, day, 0)
	require.NoError(t, err)
	require.Len(t, blocking, 1)
	assert.Equal(t, "14:00-14:30", blocking[0].Window().String())
	assert.Equal(t, calendar.DateOnly(day), calendar.DateOnly(blocking[0].Date))
}

func TestRepository_ListCompletedWithoutCost_SkipsStylistsWithoutTerms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const batch = 3

	// У стилиста фикстуры нет условий найма: его записи рассчитать нельзя
	for _, w := range [][2]string{{"09:00", "09:30"}, {"10:00", "10:30"}, {"11:00", "11:30"}, {"12:00", "12:30"}, {"13:00", "13:30"}} {
		a := f.appointment(w[0], w[1])
		a.Status = domain.StatusCompleted
		_, err := f.repo.Create(ctx, a)
		require.NoError(t, err)
	}

	users := userRepo.NewRepository(f.db)
	paid, err := users.Create(ctx, &domain.User{Username: "kim", Email: "kim@example.com", FullName: "Kim", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, users.AssignRole(ctx, paid.ID, domain.RoleStylist))

	rate := decimal.RequireFromString("40")
	require.NoError(t, employmentRepo.NewRepository(f.db).Upsert(ctx, &domain.EmploymentTerms{
		UserID:         paid.ID,
		Type:           domain.EmploymentSelfEmployed,
		CommissionRate: &rate,
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	costable := f.appointment("15:00", "15:30")
	costable.StylistID = paid.ID
	costable.Status = domain.StatusCompleted
	created, err := f.repo.Create(ctx, costable)
	require.NoError(t, err)

	ids, err := f.repo.ListCompletedWithoutCost(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, []int64{created.ID}, ids)
}
