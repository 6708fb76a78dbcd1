package release_deposit

import (
	"context"

	"github.com/m04kA/RMT-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ReleaseDeposit(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
