package workpatterns

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	workPatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeRepo struct {
	active map[int64]*domain.WorkPattern
}

func (f *fakeRepo) Create(_ context.Context, p *domain.WorkPattern) (*domain.WorkPattern, error) {
	p.ID = int64(len(f.active) + 1)
	if p.IsActive {
		f.active[p.UserID] = p
	}
	return p, nil
}

func (f *fakeRepo) GetActiveByUser(_ context.Context, userID int64) (*domain.WorkPattern, error) {
	p, ok := f.active[userID]
	if !ok {
		return nil, workPatternRepo.ErrNotFound
	}
	return p, nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func TestService_WeeklyHoursAndAvailability(t *testing.T) {
	repo := &fakeRepo{active: make(map[int64]*domain.WorkPattern)}
	svc := NewService(repo, fakeTx{}, logger.NewNop())
	ctx := context.Background()
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	hours, err := svc.WeeklyHours(ctx, 5)
	require.NoError(t, err)
	assert.True(t, hours.IsZero())

	ok, err := svc.IsAvailable(ctx, 5, monday, "10:00")
	require.NoError(t, err)
	assert.False(t, ok)

	half := domain.WorkDay{Working: true, Start: "09:00", End: "13:00"}
	_, err = svc.Create(ctx, &domain.WorkPattern{
		UserID:   5,
		Name:     "mornings",
		Schedule: map[string]domain.WorkDay{"monday": half, "tuesday": half, "wednesday": half, "thursday": half, "friday": half},
		IsActive: true,
	})
	require.NoError(t, err)

	hours, err = svc.WeeklyHours(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "20", hours.String())

	ok, err = svc.IsAvailable(ctx, 5, monday, "12:59")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(ctx, 5, monday, "13:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_CreateRejectsInvalidPattern(t *testing.T) {
	repo := &fakeRepo{active: make(map[int64]*domain.WorkPattern)}
	svc := NewService(repo, fakeTx{}, logger.NewNop())

	_, err := svc.Create(context.Background(), &domain.WorkPattern{
		UserID:   5,
		Schedule: map[string]domain.WorkDay{"funday": {Working: true, Start: "09:00", End: "10:00"}},
	})
	var list *domain.ErrorList
	require.ErrorAs(t, err, &list)
	assert.Equal(t, 2, list.Len())
	assert.Empty(t, repo.active)
}
