package workpattern

import "errors"

var (
	// ErrNotFound возвращается, когда у пользователя нет активного графика
	ErrNotFound = errors.New("workpattern.repository: active work pattern not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workpattern.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workpattern.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workpattern.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации графика
	ErrEncode = errors.New("workpattern.repository: failed to encode work schedule")
)
