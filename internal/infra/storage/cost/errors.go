package cost

import "errors"

var (
	// ErrCostNotFound возвращается, когда у записи нет расчёта стоимости
	ErrCostNotFound = errors.New("cost.repository: appointment cost not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cost.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cost.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cost.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации JSON-документов
	ErrEncode = errors.New("cost.repository: failed to encode cost document")
)
