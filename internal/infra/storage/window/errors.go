package window

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка владельца не найдена
	ErrBlockNotFound = errors.New("window.repository: owner block not found")

	// ErrDateRangeConflict возвращается, когда блокировка пересекается с другой блокировкой вещи
	ErrDateRangeConflict = errors.New("window.repository: block overlaps another block")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("window.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("window.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("window.repository: failed to scan row")
)
