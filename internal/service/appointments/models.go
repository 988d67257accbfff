package appointments

import "github.com/m04kA/SMC-SalonService/internal/domain"

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	AppointmentID int64
	Status        domain.AppointmentStatus
	ActorID       int64
	Notes         string
}
