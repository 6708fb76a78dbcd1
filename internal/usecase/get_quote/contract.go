package get_quote

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
	// GetActiveWindows возвращает занимающие бронирования и блокировки владельца
	GetActiveWindows(ctx context.Context, itemID int64) ([]domain.UnavailabilityWindow, error)
}

// QuoteEngine интерфейс расчета стоимости аренды
type QuoteEngine interface {
	ComputeQuote(item *domain.Item, req quote.RangeRequest, windows []domain.UnavailabilityWindow) (quote.Quote, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
