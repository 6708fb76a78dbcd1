package blocks

import "errors"

var (
	// ErrItemNotFound возвращается, когда вещь не найдена
	ErrItemNotFound = errors.New("item not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("block not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец вещи
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidReason возвращается, когда причина блокировки не maintenance и не owner_blocked
	ErrInvalidReason = errors.New("invalid block reason")

	// ErrInvalidRange возвращается при некорректном периоде блокировки
	ErrInvalidRange = errors.New("invalid block range")

	// ErrDateRangeConflict возвращается, когда блокировка пересекается с бронированием или другой блокировкой
	ErrDateRangeConflict = errors.New("block conflicts with existing window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
