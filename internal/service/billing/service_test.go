package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	billingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/billing"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

type fakeRepo struct {
	elements []*domain.BillingElement
	lists    int
}

func (f *fakeRepo) Create(_ context.Context, b *domain.BillingElement) (*domain.BillingElement, error) {
	b.ID = int64(len(f.elements) + 1)
	f.elements = append(f.elements, b)
	return b, nil
}

func (f *fakeRepo) Update(_ context.Context, b *domain.BillingElement) error {
	for i, el := range f.elements {
		if el.ID == b.ID {
			f.elements[i] = b
			return nil
		}
	}
	return billingRepo.ErrNotFound
}

func (f *fakeRepo) ListActive(_ context.Context) ([]*domain.BillingElement, error) {
	f.lists++
	var out []*domain.BillingElement
	for _, el := range f.elements {
		if el.IsActive {
			out = append(out, el)
		}
	}
	return out, nil
}

func TestService_CacheInvalidation(t *testing.T) {
	repo := &fakeRepo{}
	var m *metrics.Metrics // метрики отключены
	svc := NewService(repo, time.Minute, m, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.BillingElement{Name: "Color", Percentage: decimal.NewFromInt(25), IsActive: true})
	require.NoError(t, err)

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)

	_, err = svc.Create(ctx, &domain.BillingElement{Name: "Electric", Percentage: decimal.NewFromInt(15), IsActive: true})
	require.NoError(t, err)

	list, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.lists)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, time.Minute, (*metrics.Metrics)(nil), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.BillingElement{Name: "Over", Percentage: decimal.NewFromInt(101)})
	assert.Equal(t, domain.KindValidation, domain.ErrorKind(err))

	err = svc.Update(ctx, &domain.BillingElement{ID: 9, Name: "Ghost", Percentage: decimal.NewFromInt(5)})
	assert.Equal(t, domain.KindMissing, domain.ErrorKind(err))
}
