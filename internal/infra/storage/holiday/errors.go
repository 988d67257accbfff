package holiday

import "errors"

var (
	// ErrQuotaNotFound возвращается, когда квота на год ещё не создана
	ErrQuotaNotFound = errors.New("holiday.repository: quota not found")

	// ErrQuotaExists возвращается, когда квоту создали параллельно
	ErrQuotaExists = errors.New("holiday.repository: quota already exists")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("holiday.repository: request not found")

	// ErrRequestOverlap возвращается при пересечении с другой активной заявкой (exclusion constraint)
	ErrRequestOverlap = errors.New("holiday.repository: request overlaps another request")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("holiday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("holiday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("holiday.repository: failed to scan row")
)
