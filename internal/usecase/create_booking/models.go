package create_booking

import (
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RenterID     int64               // ID арендатора (из X-User-ID)
	ItemID       int64               // ID вещи
	StartDate    string              // Дата начала YYYY-MM-DD, включительно
	EndDate      string              // Дата окончания YYYY-MM-DD, не включительно
	PickupMethod domain.PickupMethod // Способ передачи вещи
	Notes        *string             // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ItemID          int64
	RenterID        int64
	OwnerID         int64
	Range           domain.DateRange
	TotalDays       int
	TotalPrice      types.Money
	DepositAmount   types.Money
	Status          domain.BookingStatus
	PickupMethod    domain.PickupMethod
	Notes           *string
	DepositReleased bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromDomain конвертирует доменную модель в ответ
func FromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		ItemID:          b.ItemID,
		RenterID:        b.RenterID,
		OwnerID:         b.OwnerID,
		Range:           b.Range,
		TotalDays:       b.TotalDays,
		TotalPrice:      b.TotalPrice,
		DepositAmount:   b.DepositAmount,
		Status:          b.Status,
		PickupMethod:    b.PickupMethod,
		Notes:           b.Notes,
		DepositReleased: b.DepositReleased,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
