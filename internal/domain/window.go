package domain

import (
	"time"

	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// DateRange полуинтервал календарных дат [Start, End).
// End - день возврата, он уже свободен для следующей аренды.
type DateRange struct {
	Start types.Date
	End   types.Date
}

// NewDateRange создает диапазон без проверок
func NewDateRange(start, end types.Date) DateRange {
	return DateRange{Start: start, End: end}
}

// IsValid returns true if End is strictly after Start
func (r DateRange) IsValid() bool {
	return r.End.After(r.Start)
}

// Days количество дней аренды (End - Start)
func (r DateRange) Days() int {
	return r.End.DaysSince(r.Start)
}

// Overlaps проверяет пересечение полуинтервалов: a.Start < b.End && b.Start < a.End.
// Диапазоны, касающиеся границей ([10,15) и [15,20)), не пересекаются.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains returns true if the date falls into the range
func (r DateRange) Contains(d types.Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + ")"
}

// WindowReason причина недоступности вещи
type WindowReason string

const (
	WindowReasonBooked       WindowReason = "booked"
	WindowReasonMaintenance  WindowReason = "maintenance"
	WindowReasonOwnerBlocked WindowReason = "owner_blocked"
)

// IsValid returns true if the reason is one of the known reasons
func (r WindowReason) IsValid() bool {
	switch r {
	case WindowReasonBooked, WindowReasonMaintenance, WindowReasonOwnerBlocked:
		return true
	}
	return false
}

// IsOwnerManaged true для причин, которые владелец выставляет сам
func (r WindowReason) IsOwnerManaged() bool {
	return r == WindowReasonMaintenance || r == WindowReasonOwnerBlocked
}

// UnavailabilityWindow период, когда вещь нельзя забронировать.
// Для окон из бронирований BookingID указывает на бронирование, для блокировок владельца BlockID.
type UnavailabilityWindow struct {
	ItemID    int64
	Range     DateRange
	Reason    WindowReason
	BookingID *int64
	BlockID   *int64
}

// OwnerBlock блокировка дат, выставленная владельцем вещи
type OwnerBlock struct {
	ID        int64
	ItemID    int64
	OwnerID   int64
	Range     DateRange
	Reason    WindowReason
	Note      *string
	CreatedAt time.Time
}

// Window представляет блокировку как окно недоступности
func (b *OwnerBlock) Window() UnavailabilityWindow {
	id := b.ID
	return UnavailabilityWindow{
		ItemID:  b.ItemID,
		Range:   b.Range,
		Reason:  b.Reason,
		BlockID: &id,
	}
}
