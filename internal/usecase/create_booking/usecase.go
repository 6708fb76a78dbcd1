package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
	itemRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/item"
	userClient "github.com/m04kA/RMT-BookingService/internal/integrations/userservice"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

const operationName = "create_booking"

// UseCase use case для создания бронирования
type UseCase struct {
	itemRepo    ItemRepository
	windowRepo  WindowRepository
	bookingRepo BookingRepository
	engine      QuoteEngine
	userClient  UserServiceClient
	publisher   EventPublisher
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// userClient и metrics могут быть nil: проверка арендатора и метрики тогда пропускаются
func NewUseCase(
	itemRepo ItemRepository,
	windowRepo WindowRepository,
	bookingRepo BookingRepository,
	engine QuoteEngine,
	userClient UserServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		itemRepo:    itemRepo,
		windowRepo:  windowRepo,
		bookingRepo: bookingRepo,
		engine:      engine,
		userClient:  userClient,
		publisher:   publisher,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому из параллельных запросов на пересекающиеся даты успешен не более чем один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: renter=%d, item=%d, range=[%s, %s), pickup=%s",
		req.RenterID, req.ItemID, req.StartDate, req.EndDate, req.PickupMethod)

	result, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.RecordBookingOutcome(operationName, outcomeOf(err))
	}
	if err != nil {
		return nil, err
	}

	return FromDomain(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем арендатора в UserService
	if err := uc.checkRenter(ctx, req.RenterID); err != nil {
		return nil, err
	}

	var (
		result *domain.Booking
		raced  *domain.DateRange
	)

	// 3. Проверка дат и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		raced = nil

		// 3.1. Получаем вещь
		item, err := uc.itemRepo.GetByID(txCtx, req.ItemID)
		if err != nil {
			if errors.Is(err, itemRepo.ErrItemNotFound) {
				uc.logger.Warn("CreateBooking: item id=%d not found", req.ItemID)
				return ErrItemNotFound
			}
			uc.logger.Error("CreateBooking: failed to get item id=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: failed to get item: %w", ErrInternal, err)
		}

		// 3.2. Владелец не может арендовать свою вещь
		if item.OwnerID == req.RenterID {
			uc.logger.Warn("CreateBooking: user id=%d tried to book own item id=%d", req.RenterID, req.ItemID)
			return ErrSelfBooking
		}

		// 3.3. Получаем окна недоступности с блокировкой (FOR UPDATE)
		windows, err := uc.windowRepo.GetActiveWindows(txCtx, req.ItemID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows for item id=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: failed to get windows: %w", ErrInternal, err)
		}

		// 3.4. Проверяем даты и считаем стоимость
		draft, err := uc.engine.CreateBookingDraft(
			item,
			quote.RangeRequest{StartDate: req.StartDate, EndDate: req.EndDate},
			windows,
			req.RenterID,
			req.PickupMethod,
			req.Notes,
		)
		if err != nil {
			uc.logger.Warn("CreateBooking: draft rejected for item id=%d: %v", req.ItemID, err)
			return err
		}

		// 3.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, draft)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDateRangeConflict) {
				uc.logger.Warn("CreateBooking: concurrent booking took range %s of item id=%d", draft.Range, req.ItemID)
				raced = &draft.Range
				return fmt.Errorf("%w: %v", quote.ErrDateRangeConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if raced != nil {
			return nil, uc.describeConflict(ctx, req.ItemID, *raced, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s", result.ID, result.TotalPrice)

	// 4. Публикуем событие. Бронирование уже сохранено, ошибка только логируется
	if err := uc.publisher.PublishBookingCreated(ctx, result); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return result, nil
}

// describeConflict перечитывает окна после отката транзакции и возвращает окно,
// занявшее даты в гонке. Если окно уже освобождено, возвращает исходную ошибку
func (uc *UseCase) describeConflict(ctx context.Context, itemID int64, requested domain.DateRange, cause error) error {
	windows, err := uc.windowRepo.GetActiveWindows(ctx, itemID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to reload windows for item id=%d: %v", itemID, err)
		return cause
	}

	if conflict, found := quote.FindConflict(itemID, requested, windows); found {
		return conflict
	}
	return cause
}

// checkRenter проверяет профиль арендатора.
// При недоступности UserService бронирование продолжается без проверки
func (uc *UseCase) checkRenter(ctx context.Context, renterID int64) error {
	if uc.userClient == nil {
		return nil
	}

	renter, err := uc.userClient.GetRenterWithGracefulDegradation(ctx, renterID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: renter id=%d not found", renterID)
			return ErrRenterNotFound
		}
		if errors.Is(err, userClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: renter id=%d not verified, UserService degraded", renterID)
			return nil
		}
		uc.logger.Error("CreateBooking: failed to get renter id=%d: %v", renterID, err)
		return fmt.Errorf("%w: failed to get renter: %v", ErrInternal, err)
	}

	if !renter.CanRent() {
		uc.logger.Warn("CreateBooking: renter id=%d is blocked", renterID)
		return ErrRenterNotAllowed
	}

	return nil
}
