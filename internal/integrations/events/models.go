package events

import (
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

// Типы событий бронирования
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	OccurredAt      time.Time `json:"occurred_at"`
	BookingID       int64     `json:"booking_id"`
	ItemID          int64     `json:"item_id"`
	RenterID        int64     `json:"renter_id"`
	OwnerID         int64     `json:"owner_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	PreviousStatus  string    `json:"previous_status,omitempty"`
}

func newBookingEvent(id, eventType string, at time.Time, b *domain.Booking) BookingEvent {
	return BookingEvent{
		EventID:         id,
		EventType:       eventType,
		OccurredAt:      at.UTC(),
		BookingID:       b.ID,
		ItemID:          b.ItemID,
		RenterID:        b.RenterID,
		OwnerID:         b.OwnerID,
		StartDate:       b.Range.Start.String(),
		EndDate:         b.Range.End.String(),
		TotalPriceCents: b.TotalPrice.Cents(),
		Status:          string(b.Status),
	}
}
