package save_employment_terms

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type EmploymentService interface {
	Save(ctx context.Context, terms *domain.EmploymentTerms) error
	IsCurrentlyEmployed(ctx context.Context, userID int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
