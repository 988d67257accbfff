package employment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	employmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/employment"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeRepo struct {
	terms map[int64]*domain.EmploymentTerms
}

func (f *fakeRepo) GetByUser(_ context.Context, userID int64) (*domain.EmploymentTerms, error) {
	t, ok := f.terms[userID]
	if !ok {
		return nil, employmentRepo.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) Upsert(_ context.Context, e *domain.EmploymentTerms) error {
	f.terms[e.UserID] = e
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func TestService_SaveAndEmployment(t *testing.T) {
	repo := &fakeRepo{terms: make(map[int64]*domain.EmploymentTerms)}
	svc := NewService(repo, time.UTC, logger.NewNop())
	svc.timeProvider = fixedTime{now: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	terms, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, terms)

	invalid := &domain.EmploymentTerms{UserID: 3, Type: domain.EmploymentEmployed}
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(svc.Save(ctx, invalid)))

	end := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Save(ctx, &domain.EmploymentTerms{
		UserID:     3,
		Type:       domain.EmploymentEmployed,
		HourlyRate: ptr.Ptr(decimal.NewFromInt(15)),
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    &end,
	}))

	employed, err := svc.IsCurrentlyEmployed(ctx, 3)
	require.NoError(t, err)
	assert.False(t, employed)

	employed, err = svc.IsCurrentlyEmployed(ctx, 4)
	require.NoError(t, err)
	assert.False(t, employed)
}
