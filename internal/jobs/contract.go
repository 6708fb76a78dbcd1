package jobs

import (
	"context"
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ExpirePending(ctx context.Context, createdBefore time.Time, reason string) ([]int64, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishBookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
