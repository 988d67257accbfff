package book_appointment

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("book_appointment: internal error")
)
