package get_available_slots

import "errors"

var (
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("get_available_slots: internal error")
)
