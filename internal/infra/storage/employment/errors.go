package employment

import "errors"

var (
	// ErrNotFound возвращается, когда у пользователя нет условий найма
	ErrNotFound = errors.New("employment.repository: employment terms not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("employment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("employment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("employment.repository: failed to scan row")
)
