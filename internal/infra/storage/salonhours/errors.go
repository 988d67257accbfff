package salonhours

import "errors"

var (
	// ErrNotFound возвращается, когда часы работы салона ещё не сохранены
	ErrNotFound = errors.New("salonhours.repository: salon hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salonhours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("salonhours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("salonhours.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации JSON-документа
	ErrEncode = errors.New("salonhours.repository: failed to encode opening hours")
)
