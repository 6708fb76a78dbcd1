package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
)

// BookingRepository репозиторий бронирований в памяти.
// Повторяет exclusion constraint таблицы bookings: занимающие бронирования одной вещи не пересекаются
type BookingRepository struct {
	store *Store
}

// Create сохраняет черновик бронирования
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var created domain.Booking

	err := r.store.write(ctx, func() error {
		if booking.IsOccupying() {
			if err := r.checkOverlapLocked(booking.ItemID, booking.Range); err != nil {
				return err
			}
		}

		r.store.nextBookingID++
		now := r.store.now()

		created = *booking
		created.ID = r.store.nextBookingID
		created.CreatedAt = now
		created.UpdatedAt = now
		r.store.bookings[created.ID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	*booking = created
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	var (
		booking domain.Booking
		ok      bool
	)
	r.store.read(func() {
		booking, ok = r.store.bookings[id]
	})
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &booking, nil
}

// GetByRenterID получает бронирования арендатора, новые первыми
func (r *BookingRepository) GetByRenterID(_ context.Context, renterID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := r.collect(func(b domain.Booking) bool {
		if b.RenterID != renterID {
			return false
		}
		return status == nil || b.Status == *status
	})

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Range.Start.Equal(result[j].Range.Start) {
			return result[i].Range.Start.After(result[j].Range.Start)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// GetByOwnerWithFilter получает бронирования вещей владельца с фильтрами
func (r *BookingRepository) GetByOwnerWithFilter(_ context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	result := r.collect(func(b domain.Booking) bool {
		if b.OwnerID != filter.OwnerID {
			return false
		}
		if filter.ItemID != nil && b.ItemID != *filter.ItemID {
			return false
		}
		if filter.From != nil && !b.Range.End.After(*filter.From) {
			return false
		}
		if filter.To != nil && !b.Range.Start.Before(*filter.To) {
			return false
		}
		if filter.Status != nil {
			return b.Status == *filter.Status
		}
		return filter.IncludeInactive || !b.Status.IsInactive()
	})

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Range.Start.Equal(result[j].Range.Start) {
			return result[i].Range.Start.Before(result[j].Range.Start)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateStatus обновляет статус бронирования
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.store.write(ctx, func() error {
		booking, ok := r.store.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}

		if status == domain.StatusDisputed {
			booking.Dispute()
		} else {
			booking.Status = status
		}
		booking.UpdatedAt = r.store.now()
		r.store.bookings[id] = booking
		return nil
	})
}

// Cancel переводит бронирование в cancelled с причиной
func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string) error {
	return r.store.write(ctx, func() error {
		booking, ok := r.store.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}

		r.cancelLocked(&booking, reason)
		r.store.bookings[id] = booking
		return nil
	})
}

// ReleaseDeposit отмечает залог возвращенным
func (r *BookingRepository) ReleaseDeposit(ctx context.Context, id int64) error {
	return r.store.write(ctx, func() error {
		booking, ok := r.store.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}

		booking.DepositReleased = true
		booking.UpdatedAt = r.store.now()
		r.store.bookings[id] = booking
		return nil
	})
}

// ExpirePending отменяет pending бронирования, созданные раньше createdBefore
func (r *BookingRepository) ExpirePending(ctx context.Context, createdBefore time.Time, reason string) ([]int64, error) {
	ids := make([]int64, 0)

	err := r.store.write(ctx, func() error {
		for id, booking := range r.store.bookings {
			if booking.Status != domain.StatusPending || !booking.CreatedAt.Before(createdBefore) {
				continue
			}
			r.cancelLocked(&booking, reason)
			r.store.bookings[id] = booking
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *BookingRepository) cancelLocked(booking *domain.Booking, reason string) {
	now := r.store.now()
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledAt = &now
	booking.UpdatedAt = now
}

// checkOverlapLocked ищет другое занимающее бронирование вещи на пересекающиеся даты
func (r *BookingRepository) checkOverlapLocked(itemID int64, dateRange domain.DateRange) error {
	for _, other := range r.store.bookings {
		if other.ItemID != itemID || !other.IsOccupying() {
			continue
		}
		if other.Range.Overlaps(dateRange) {
			return fmt.Errorf("%w: item=%d range=%s overlaps booking id=%d",
				bookingRepo.ErrDateRangeConflict, itemID, dateRange, other.ID)
		}
	}
	return nil
}

func (r *BookingRepository) collect(match func(b domain.Booking) bool) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	r.store.read(func() {
		for _, b := range r.store.bookings {
			if match(b) {
				booking := b
				result = append(result, &booking)
			}
		}
	})
	return result
}
