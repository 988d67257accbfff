package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	// DefaultStepMinutes шаг сетки начала записи
	DefaultStepMinutes = 15

	MinStepMinutes = 5
	MaxStepMinutes = 120
)

// Request модель запроса свободных интервалов стилиста
type Request struct {
	StylistID   int64
	Date        time.Time
	Segments    []validate_booking.SegmentRequest
	StepMinutes int // 0 - DefaultStepMinutes
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	StylistID       int64
	Date            time.Time
	DurationMinutes int // суммарная длительность услуг с ожиданием
	Slots           []Slot
}

// Slot время начала и окончания записи, которую можно создать
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
