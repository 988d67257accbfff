package get_work_pattern

import "github.com/m04kA/SMC-SalonService/internal/domain"

// WorkPatternResponse HTTP модель графика работы
type WorkPatternResponse struct {
	ID          int64                     `json:"id"`
	UserID      int64                     `json:"userId"`
	Name        string                    `json:"name"`
	Schedule    map[string]domain.WorkDay `json:"schedule"`
	IsActive    bool                      `json:"isActive"`
	WeeklyHours string                    `json:"weeklyHours"`
}

// FromDomain конвертирует график в HTTP модель
func FromDomain(p *domain.WorkPattern) *WorkPatternResponse {
	return &WorkPatternResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Schedule:    p.Schedule,
		IsActive:    p.IsActive,
		WeeklyHours: p.WeeklyHours().String(),
	}
}
