package blockedinterval

import "errors"

var (
	// ErrIntervalNotFound возвращается, когда блокировка не найдена
	ErrIntervalNotFound = errors.New("blockedinterval.repository: blocked interval not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockedinterval.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockedinterval.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockedinterval.repository: failed to scan row")
)
