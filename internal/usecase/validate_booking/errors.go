package validate_booking

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("validate_booking: internal error")
)
