package workpatterns

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("workpatterns.service: internal error")
)
