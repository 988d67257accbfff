package create_work_pattern

import "github.com/m04kA/SMC-SalonService/internal/domain"

// CreatePatternRequest HTTP request model
type CreatePatternRequest struct {
	Name     string                    `json:"name"`
	Schedule map[string]domain.WorkDay `json:"schedule"`
	IsActive *bool                     `json:"isActive,omitempty"`
}

// ToDomain конвертирует запрос в график; по умолчанию график активен
func (r *CreatePatternRequest) ToDomain(userID int64) *domain.WorkPattern {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.WorkPattern{
		UserID:   userID,
		Name:     r.Name,
		Schedule: r.Schedule,
		IsActive: active,
	}
}
