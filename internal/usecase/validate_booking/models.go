package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SegmentRequest одна услуга в порядке выполнения
type SegmentRequest struct {
	ServiceID   int64
	UseOverride bool
}

// Input предлагаемая запись
type Input struct {
	CustomerID int64
	StylistID  int64
	BookedByID int64
	Date       time.Time
	StartTime  types.TimeString
	Segments   []SegmentRequest

	// Emergency просит пропустить проверку часов работы, если салон разрешает экстренное продление
	Emergency bool
	// OverrideWorkPattern превращает выход за рабочий график стилиста в предупреждение
	OverrideWorkPattern bool
	// AllowPastDate отключает проверку даты (правка существующей записи без переноса)
	AllowPastDate bool
	// ExcludeAppointmentID исключает запись из поиска пересечений (0 - не исключать)
	ExcludeAppointmentID int64
}

// Result рассчитанные сегменты и время окончания
type Result struct {
	Segments []domain.Segment
	EndTime  types.TimeString
	Warnings []string
}
