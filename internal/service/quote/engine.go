package quote

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// Engine расчет стоимости аренды и проверка доступности дат.
// Не хранит состояния между вызовами: результат зависит только от аргументов и текущей даты.
type Engine struct {
	timeProvider TimeProvider
	location     *time.Location
}

// NewEngine создает движок расчета.
// location задает часовой пояс, в котором определяется "сегодня" (nil = UTC).
func NewEngine(timeProvider TimeProvider, location *time.Location) *Engine {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if location == nil {
		location = time.UTC
	}
	return &Engine{
		timeProvider: timeProvider,
		location:     location,
	}
}

// Today текущая календарная дата в часовом поясе движка
func (e *Engine) Today() types.Date {
	return types.DateOf(e.timeProvider.Now().In(e.location))
}

// ComputeQuote проверяет запрошенный период и считает стоимость аренды.
//
// Проверки выполняются по порядку, возвращается первая сработавшая:
//  1. обе даты в формате YYYY-MM-DD (ErrInvalidDateFormat)
//  2. конец строго позже начала (ErrInvalidRange)
//  3. начало не раньше сегодняшнего дня (ErrRangeInPast)
//  4. вещь доступна для аренды (ErrItemUnavailable)
//  5. нет пересечения с окнами недоступности вещи (*ConflictError)
func (e *Engine) ComputeQuote(item *domain.Item, req RangeRequest, windows []domain.UnavailabilityWindow) (Quote, error) {
	if item == nil {
		return Quote{}, fmt.Errorf("%w: item is required", ErrInvalidItem)
	}

	// 1-3. Разбор и проверка периода
	dateRange, err := e.parseRange(req)
	if err != nil {
		return Quote{}, err
	}

	// 4. Доступность вещи
	if !item.IsAvailable {
		return Quote{}, ErrItemUnavailable
	}
	if !item.HasValidPricing() {
		return Quote{}, fmt.Errorf("%w: price=%s deposit=%s", ErrInvalidItem, item.PricePerDay, item.DepositAmount)
	}

	// 5. Пересечение с существующими окнами
	if conflict, found := findConflict(item.ID, dateRange, windows); found {
		return Quote{}, &ConflictError{Window: conflict}
	}

	totalDays := dateRange.Days()
	if totalDays < 1 {
		totalDays = 1
	}

	totalPrice, err := item.PricePerDay.Mul(totalDays)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	return Quote{
		Range:         dateRange,
		TotalDays:     totalDays,
		TotalPrice:    totalPrice,
		DepositAmount: item.DepositAmount,
	}, nil
}

// CreateBookingDraft строит черновик бронирования в статусе pending.
// Повторно выполняет ComputeQuote с теми же окнами, поэтому цена и залог всегда совпадают с расчетом.
// Черновик не сохраняется: ID и временные метки проставляет репозиторий.
func (e *Engine) CreateBookingDraft(
	item *domain.Item,
	req RangeRequest,
	windows []domain.UnavailabilityWindow,
	renterID int64,
	pickupMethod domain.PickupMethod,
	notes *string,
) (*domain.Booking, error) {
	q, err := e.ComputeQuote(item, req, windows)
	if err != nil {
		return nil, err
	}
	return e.draftFromQuote(item, q, renterID, pickupMethod, notes)
}

func (e *Engine) draftFromQuote(
	item *domain.Item,
	q Quote,
	renterID int64,
	pickupMethod domain.PickupMethod,
	notes *string,
) (*domain.Booking, error) {
	if !pickupMethod.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPickupMethod, pickupMethod)
	}

	notes, err := normalizeNotes(notes)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ItemID:          item.ID,
		RenterID:        renterID,
		OwnerID:         item.OwnerID,
		Range:           q.Range,
		TotalDays:       q.TotalDays,
		TotalPrice:      q.TotalPrice,
		DepositAmount:   q.DepositAmount,
		Status:          domain.StatusPending,
		PickupMethod:    pickupMethod,
		Notes:           notes,
		DepositReleased: false,
	}, nil
}

// ValidateRange выполняет проверки 1-3 без привязки к вещи (для блокировок владельца)
func (e *Engine) ValidateRange(req RangeRequest) (domain.DateRange, error) {
	return e.parseRange(req)
}

func (e *Engine) parseRange(req RangeRequest) (domain.DateRange, error) {
	start, err := types.ParseDate(req.StartDate)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: startDate=%q", ErrInvalidDateFormat, req.StartDate)
	}
	end, err := types.ParseDate(req.EndDate)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: endDate=%q", ErrInvalidDateFormat, req.EndDate)
	}

	dateRange := domain.NewDateRange(start, end)
	if !dateRange.IsValid() {
		return domain.DateRange{}, fmt.Errorf("%w: %s", ErrInvalidRange, dateRange)
	}

	if start.Before(e.Today()) {
		return domain.DateRange{}, fmt.Errorf("%w: start=%s", ErrRangeInPast, start)
	}

	return dateRange, nil
}

func normalizeNotes(notes *string) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: max %d characters", ErrNotesTooLong, domain.MaxNotesLength)
	}
	return &trimmed, nil
}
