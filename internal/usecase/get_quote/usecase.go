package get_quote

import (
	"context"
	"errors"
	"fmt"

	itemRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/item"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

// UseCase use case расчета стоимости аренды вещи на период
type UseCase struct {
	itemRepo   ItemRepository
	windowRepo WindowRepository
	engine     QuoteEngine
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	itemRepo ItemRepository,
	windowRepo WindowRepository,
	engine QuoteEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		itemRepo:   itemRepo,
		windowRepo: windowRepo,
		engine:     engine,
		logger:     logger,
	}
}

// Execute выполняет расчет стоимости.
// Ошибки движка расчета (формат дат, порядок, прошлое, недоступность, пересечение)
// возвращаются без изменений, чтобы обработчик мог их различить.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: item=%d, range=[%s, %s)", req.ItemID, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	if req.ItemID <= 0 {
		uc.logger.Warn("GetQuote: invalid item id=%d", req.ItemID)
		return nil, fmt.Errorf("%w: item ID must be positive", ErrInvalidInput)
	}

	// 2. Получаем вещь
	item, err := uc.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, itemRepo.ErrItemNotFound) {
			uc.logger.Warn("GetQuote: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("GetQuote: failed to get item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	// 3. Получаем окна недоступности вещи
	windows, err := uc.windowRepo.GetActiveWindows(ctx, req.ItemID)
	if err != nil {
		uc.logger.Error("GetQuote: failed to get windows for item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	// 4. Считаем стоимость
	q, err := uc.engine.ComputeQuote(item, quote.RangeRequest{StartDate: req.StartDate, EndDate: req.EndDate}, windows)
	if err != nil {
		uc.logger.Warn("GetQuote: item id=%d rejected: %v", req.ItemID, err)
		return nil, err
	}

	uc.logger.Info("GetQuote: item=%d, days=%d, total=%s, deposit=%s",
		req.ItemID, q.TotalDays, q.TotalPrice, q.DepositAmount)

	return &Response{
		ItemID:        item.ID,
		Range:         q.Range,
		TotalDays:     q.TotalDays,
		PricePerDay:   item.PricePerDay,
		TotalPrice:    q.TotalPrice,
		DepositAmount: q.DepositAmount,
	}, nil
}
