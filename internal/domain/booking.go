package domain

import (
	"time"

	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// BookingStatus represents the status of a rental booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDisputed  BookingStatus = "disputed"
)

// statusTransitions граф допустимых переходов (кроме перехода в disputed, он разрешен из любого статуса)
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted, StatusCancelled},
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled, StatusDisputed:
		return true
	}
	return false
}

// IsOccupying returns true if a booking in this status blocks its dates.
// disputed не входит: занятость спорного бронирования зависит от DisputedFrom
func (s BookingStatus) IsOccupying() bool {
	for _, occupying := range OccupyingStatuses {
		if s == occupying {
			return true
		}
	}
	return false
}

// IsInactive returns true for finished statuses
func (s BookingStatus) IsInactive() bool {
	for _, inactive := range InactiveStatuses {
		if s == inactive {
			return true
		}
	}
	return false
}

// CanTransitionTo проверяет переход по графу статусов
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !s.IsValid() || !next.IsValid() || s == next {
		return false
	}
	if next == StatusDisputed {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PickupMethod способ передачи вещи арендатору
type PickupMethod string

const (
	PickupMethodPickup   PickupMethod = "pickup"
	PickupMethodDelivery PickupMethod = "delivery"
)

// IsValid returns true if the pickup method is known
func (m PickupMethod) IsValid() bool {
	return m == PickupMethodPickup || m == PickupMethodDelivery
}

// Booking represents a rental of an item for a date range
type Booking struct {
	ID       int64
	ItemID   int64
	RenterID int64
	OwnerID  int64 // копируется из вещи при создании
	Range    DateRange

	TotalDays     int
	TotalPrice    types.Money
	DepositAmount types.Money // копируется из вещи при создании

	Status          BookingStatus
	PickupMethod    PickupMethod
	Notes           *string
	DepositReleased bool

	CancellationReason *string
	CancelledAt        *time.Time
	DisputedFrom       *BookingStatus // статус, из которого открыт спор

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the booking blocks its dates.
// Спор удерживает даты, только если открыт из занимающего статуса;
// спор по отмененной или завершенной аренде даты не возвращает
func (b *Booking) IsOccupying() bool {
	if b.Status == StatusDisputed {
		return b.DisputedFrom != nil && b.DisputedFrom.IsOccupying()
	}
	return b.Status.IsOccupying()
}

// Dispute переводит бронирование в disputed, запоминая исходный статус
func (b *Booking) Dispute() {
	from := b.Status
	b.DisputedFrom = &from
	b.Status = StatusDisputed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// CanReleaseDeposit returns true if the rental is finished and the deposit is still held
func (b *Booking) CanReleaseDeposit() bool {
	return !b.DepositReleased && (b.Status == StatusCompleted || b.Status == StatusCancelled)
}

// IsParticipant returns true if the user is the renter or the owner
func (b *Booking) IsParticipant(userID int64) bool {
	return b.RenterID == userID || b.OwnerID == userID
}

// Window представляет бронирование как окно недоступности
func (b *Booking) Window() UnavailabilityWindow {
	id := b.ID
	return UnavailabilityWindow{
		ItemID:    b.ItemID,
		Range:     b.Range,
		Reason:    WindowReasonBooked,
		BookingID: &id,
	}
}

// OwnerBookingsFilter фильтр для получения бронирований владельца
type OwnerBookingsFilter struct {
	OwnerID         int64          // Обязательный параметр
	ItemID          *int64         // Фильтр по вещи (опционально)
	From            *types.Date    // Бронирования, заканчивающиеся после этой даты (опционально)
	To              *types.Date    // Бронирования, начинающиеся до этой даты (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные и отмененные
}
