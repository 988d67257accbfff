package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID          int64                             // ID клиента
	StylistID           int64                             // ID стилиста
	BookedByID          int64                             // ID пользователя, оформившего запись
	Date                time.Time                         // Дата записи (без времени)
	StartTime           types.TimeString                  // Время начала, например "10:00"
	Segments            []validate_booking.SegmentRequest // Услуги в порядке выполнения
	Notes               string                            // Заметки
	ContactPhone        *string                           // Контактный телефон (опционально)
	ContactEmail        *string                           // Контактный email (опционально)
	Emergency           bool                              // Экстренное продление часов работы
	OverrideWorkPattern bool                              // Разрешить запись вне графика стилиста
}

// Response созданная запись и предупреждения валидатора
type Response struct {
	Appointment *domain.Appointment
	Warnings    []string
}
