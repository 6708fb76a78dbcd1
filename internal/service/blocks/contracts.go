package blocks

import (
	"context"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

// ItemRepository интерфейс репозитория вещей
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

// WindowRepository интерфейс репозитория окон недоступности
type WindowRepository interface {
	GetActiveWindows(ctx context.Context, itemID int64) ([]domain.UnavailabilityWindow, error)
	CreateBlock(ctx context.Context, block *domain.OwnerBlock) (*domain.OwnerBlock, error)
	GetBlockByID(ctx context.Context, id int64) (*domain.OwnerBlock, error)
	DeleteBlock(ctx context.Context, id int64) error
}

// RangeValidator проверяет запрошенный период так же, как при расчете стоимости
type RangeValidator interface {
	ValidateRange(req quote.RangeRequest) (domain.DateRange, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
