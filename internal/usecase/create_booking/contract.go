package create_booking

import (
	"context"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/internal/integrations/userservice"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

// ItemRepository интерфейс репозитория вещей
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

// WindowRepository интерфейс репозитория окон недоступности
type WindowRepository interface {
	GetActiveWindows(ctx context.Context, itemID int64) ([]domain.UnavailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// QuoteEngine интерфейс построения черновика бронирования
type QuoteEngine interface {
	CreateBookingDraft(
		item *domain.Item,
		req quote.RangeRequest,
		windows []domain.UnavailabilityWindow,
		renterID int64,
		pickupMethod domain.PickupMethod,
		notes *string,
	) (*domain.Booking, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetRenterWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Renter, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordBookingOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
