package update_appointment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("update_appointment: internal error")
)
