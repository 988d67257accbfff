package billing

import "errors"

var (
	// ErrNotFound возвращается, когда элемент биллинга не найден
	ErrNotFound = errors.New("billing.repository: billing element not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("billing.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("billing.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("billing.repository: failed to scan row")
)
