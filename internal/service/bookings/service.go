package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RMT-BookingService/internal/service/bookings/models"
)

// Причины отмены по умолчанию
const (
	reasonCancelledByRenter = "cancelled by renter"
	reasonCancelledByOwner  = "cancelled by owner"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут только арендатор и владелец вещи
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetRenterBookings получает историю аренд пользователя.
// Опционально фильтрует по статусу
func (s *Service) GetRenterBookings(ctx context.Context, req *models.GetRenterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRenterBookings: fetching bookings for renter=%d, status=%v", req.RenterID, req.Status)

	if req.RequesterID != req.RenterID {
		s.logger.Warn("GetRenterBookings: user=%d tried to read bookings of renter=%d", req.RequesterID, req.RenterID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetRenterBookings: invalid status=%s for renter=%d", *req.Status, req.RenterID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByRenterID(ctx, req.RenterID, domainStatus)
	if err != nil {
		s.logger.Error("GetRenterBookings: repository error for renter=%d: %v", req.RenterID, err)
		return nil, fmt.Errorf("%w: GetRenterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRenterBookings: successfully fetched %d bookings for renter=%d", len(bookings), req.RenterID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOwnerBookings получает бронирования вещей владельца с фильтрацией
// по вещи, периоду, статусу и включению неактивных бронирований.
// Без фильтра по статусу возвращает только бронирования, занимающие даты
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetOwnerBookings: fetching bookings for owner=%d", req.OwnerID)
	if req.ItemID != nil {
		logMsg += fmt.Sprintf(", item=%d", *req.ItemID)
	}
	if req.From != nil || req.To != nil {
		logMsg += fmt.Sprintf(", period=%v to %v", derefOr(req.From, "-"), derefOr(req.To, "-"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.RequesterID != req.OwnerID {
		s.logger.Warn("GetOwnerBookings: user=%d tried to read bookings of owner=%d", req.RequesterID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid filter for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование по графу статусов.
// Подтвердить, выдать и завершить аренду может только владелец,
// отменить и открыть спор могут обе стороны
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	var reason string
	if req.Reason != nil {
		reason = *req.Reason
	}

	return s.transition(ctx, "UpdateStatus", bookingID, req.UserID, next, reason)
}

// Cancel отменяет бронирование.
// Доступно арендатору и владельцу, пока аренда не завершена
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	return s.transition(ctx, "Cancel", bookingID, req.UserID, domain.StatusCancelled, req.CancellationReason)
}

// ReleaseDeposit отмечает залог возвращенным.
// Доступно только владельцу, один раз, после завершения или отмены аренды
func (s *Service) ReleaseDeposit(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("ReleaseDeposit: releasing deposit of booking id=%d by user=%d", bookingID, userID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "ReleaseDeposit", bookingID)
		if err != nil {
			return err
		}

		if booking.OwnerID != userID {
			s.logger.Warn("ReleaseDeposit: user=%d is not the owner of booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}

		if booking.DepositReleased {
			s.logger.Warn("ReleaseDeposit: deposit of booking id=%d already released", bookingID)
			return ErrDepositAlreadyReleased
		}

		if !booking.CanReleaseDeposit() {
			s.logger.Warn("ReleaseDeposit: booking id=%d is %s", bookingID, booking.Status)
			return ErrDepositNotReleasable
		}

		if err := s.bookingRepo.ReleaseDeposit(txCtx, bookingID); err != nil {
			return s.mapRepoError("ReleaseDeposit", bookingID, err)
		}

		result, err = s.getBooking(txCtx, "ReleaseDeposit", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ReleaseDeposit: deposit of booking id=%d released", bookingID)
	return models.FromDomainBooking(result), nil
}

// Вспомогательные методы

// transition проверяет права и граф статусов и сохраняет новый статус
func (s *Service) transition(
	ctx context.Context,
	op string,
	bookingID int64,
	userID int64,
	next domain.BookingStatus,
	reason string,
) (*models.BookingResponse, error) {
	var (
		result   *domain.Booking
		previous domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := s.getBooking(txCtx, op, bookingID)
		if err != nil {
			return err
		}
		previous = booking.Status

		// 2. Проверяем права
		if err := checkTransitionAccess(booking, userID, next); err != nil {
			s.logger.Warn("%s: user=%d cannot move booking id=%d to %s", op, userID, bookingID, next)
			return err
		}

		// 3. Проверяем граф статусов
		if !booking.Status.CanTransitionTo(next) {
			s.logger.Warn("%s: transition %s -> %s is not allowed for booking id=%d", op, booking.Status, next, bookingID)
			if next == domain.StatusCancelled {
				return fmt.Errorf("%w: status=%s", ErrCannotCancel, booking.Status)
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		// 4. Сохраняем
		if next == domain.StatusCancelled {
			cancelReason, err := normalizeReason(reason, booking, userID)
			if err != nil {
				return err
			}
			err = s.bookingRepo.Cancel(txCtx, bookingID, cancelReason)
			if err != nil {
				return s.mapRepoError(op, bookingID, err)
			}
		} else if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, next); err != nil {
			return s.mapRepoError(op, bookingID, err)
		}

		result, err = s.getBooking(txCtx, op, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d moved %s -> %s", op, bookingID, previous, result.Status)

	// Статус уже сохранен, ошибка публикации только логируется
	if err := s.publisher.PublishBookingStatusChanged(ctx, result, previous); err != nil {
		s.logger.Error("%s: failed to publish status change of booking id=%d: %v", op, bookingID, err)
	}

	return models.FromDomainBooking(result), nil
}

// checkTransitionAccess проверяет, может ли пользователь перевести бронирование в статус
func checkTransitionAccess(booking *domain.Booking, userID int64, next domain.BookingStatus) error {
	if !booking.IsParticipant(userID) {
		return ErrAccessDenied
	}

	switch next {
	case domain.StatusConfirmed, domain.StatusActive, domain.StatusCompleted:
		if booking.OwnerID != userID {
			return ErrAccessDenied
		}
	}

	return nil
}

// normalizeReason проверяет причину отмены и подставляет причину по умолчанию
func normalizeReason(reason string, booking *domain.Booking, userID int64) (string, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if reason != "" {
		return reason, nil
	}
	if booking.OwnerID == userID {
		return reasonCancelledByOwner, nil
	}
	return reasonCancelledByRenter, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) mapRepoError(op string, bookingID int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
		return ErrBookingNotFound
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
}

func derefOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
