package get_available_slots

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// intersect возвращает пересечение двух окон; false, если оно пустое
func intersect(a, b calendar.Window) (calendar.Window, bool) {
	start, end := a.Start, a.End
	if b.Start.IsAfter(start) {
		start = b.Start
	}
	if b.End.IsBefore(end) {
		end = b.End
	}
	if !start.IsBefore(end) {
		return calendar.Window{}, false
	}
	return calendar.Window{Start: start, End: end}, true
}

// generateSlots перебирает начала записи с шагом step от начала окна.
// Запись длительностью duration должна целиком помещаться в окно, не начинаться раньше
// notBefore (пусто - без ограничения) и не пересекаться с блокирующими записями.
// Границы не считаются пересечением: запись 10:00-10:30 не мешает записи с 10:30.
func generateSlots(window calendar.Window, duration, step int, notBefore types.TimeString, blocking []*domain.Appointment) []Slot {
	slots := make([]Slot, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	for start := window.Start; start.IsBefore(window.End); {
		end, err := start.AddMinutes(duration)
		if err != nil || end.IsAfter(window.End) {
			break
		}

		candidate := calendar.Window{Start: start, End: end}
		if (notBefore.IsZero() || !start.IsBefore(notBefore)) && !overlapsAny(candidate, blocking) {
			slots = append(slots, Slot{StartTime: start, EndTime: end})
		}

		start, err = start.AddMinutes(step)
		if err != nil {
			break
		}
	}

	return slots
}

func overlapsAny(w calendar.Window, blocking []*domain.Appointment) bool {
	for _, a := range blocking {
		if a.BlocksSlot() && a.Window().Overlaps(w) {
			return true
		}
	}
	return false
}
