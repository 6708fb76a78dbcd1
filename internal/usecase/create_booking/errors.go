package create_booking

import "errors"

var (
	// ErrItemNotFound возвращается, когда вещь не найдена
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrSelfBooking возвращается, когда владелец пытается арендовать свою вещь
	ErrSelfBooking = errors.New("create_booking: owner cannot book own item")

	// ErrRenterNotFound возвращается, когда арендатор не найден в UserService
	ErrRenterNotFound = errors.New("create_booking: renter not found")

	// ErrRenterNotAllowed возвращается, когда арендатор заблокирован
	ErrRenterNotAllowed = errors.New("create_booking: renter is not allowed to book")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
