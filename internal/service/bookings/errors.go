package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается, когда переход запрещен графом статусов
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrDepositNotReleasable возвращается, когда аренда еще не завершена
	ErrDepositNotReleasable = errors.New("deposit can be released only for completed or cancelled bookings")

	// ErrDepositAlreadyReleased возвращается при повторном возврате залога
	ErrDepositAlreadyReleased = errors.New("deposit already released")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
