package quote

import (
	"errors"
	"fmt"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

var (
	// ErrInvalidDateFormat возвращается, когда дата не разбирается как YYYY-MM-DD
	ErrInvalidDateFormat = errors.New("quote: invalid date format")

	// ErrInvalidRange возвращается, когда дата окончания не позже даты начала
	ErrInvalidRange = errors.New("quote: end date must be after start date")

	// ErrRangeInPast возвращается, когда аренда начинается раньше сегодняшнего дня
	ErrRangeInPast = errors.New("quote: start date is in the past")

	// ErrItemUnavailable возвращается, когда вещь снята с аренды
	ErrItemUnavailable = errors.New("quote: item is not available for rent")

	// ErrDateRangeConflict возвращается, когда даты пересекаются с окном недоступности.
	// Конкретное окно доступно через *ConflictError.
	ErrDateRangeConflict = errors.New("quote: date range conflicts with existing window")

	// ErrInvalidPickupMethod возвращается при неизвестном способе передачи
	ErrInvalidPickupMethod = errors.New("quote: invalid pickup method")

	// ErrInvalidItem возвращается, когда у вещи некорректная цена или залог
	ErrInvalidItem = errors.New("quote: item has invalid pricing")

	// ErrNotesTooLong возвращается, когда заметка длиннее domain.MaxNotesLength
	ErrNotesTooLong = errors.New("quote: notes are too long")
)

// ConflictError пересечение с конкретным окном недоступности
type ConflictError struct {
	Window domain.UnavailabilityWindow
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrDateRangeConflict, e.Window.Reason, e.Window.Range)
}

func (e *ConflictError) Unwrap() error {
	return ErrDateRangeConflict
}

// AsConflict достает окно конфликта из цепочки ошибок
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
