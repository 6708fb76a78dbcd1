package create_booking

import (
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

// Исходы операции для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RenterID <= 0 {
		return fmt.Errorf("%w: renterID must be positive", ErrInvalidInput)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	return nil
}

// outcomeOf классифицирует результат создания бронирования
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, quote.ErrDateRangeConflict), errors.Is(err, bookingRepo.ErrDateRangeConflict):
		return outcomeConflict
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}
