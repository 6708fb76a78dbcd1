package create_booking

import (
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	createBooking "github.com/m04kA/RMT-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID       int64   `json:"itemId" validate:"required,gt=0"`
	StartDate    string  `json:"startDate" validate:"required"` // "2025-10-15", включительно
	EndDate      string  `json:"endDate" validate:"required"`   // "2025-10-18", не включительно
	PickupMethod string  `json:"pickupMethod"` // pickup по умолчанию
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64   `json:"id"`
	ItemID             int64   `json:"itemId"`
	RenterID           int64   `json:"renterId"`
	OwnerID            int64   `json:"ownerId"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	TotalDays          int     `json:"totalDays"`
	TotalPrice         string  `json:"totalPrice"`
	TotalPriceCents    int64   `json:"totalPriceCents"`
	DepositAmount      string  `json:"depositAmount"`
	DepositAmountCents int64   `json:"depositAmountCents"`
	Status             string  `json:"status"`
	PickupMethod       string  `json:"pickupMethod"`
	Notes              *string `json:"notes,omitempty"`
	DepositReleased    bool    `json:"depositReleased"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(renterID int64) *createBooking.Request {
	pickup := domain.PickupMethodPickup
	if r.PickupMethod != "" {
		pickup = domain.PickupMethod(r.PickupMethod)
	}

	return &createBooking.Request{
		RenterID:     renterID,
		ItemID:       r.ItemID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		PickupMethod: pickup,
		Notes:        r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		ItemID:             resp.ItemID,
		RenterID:           resp.RenterID,
		OwnerID:            resp.OwnerID,
		StartDate:          resp.Range.Start.String(),
		EndDate:            resp.Range.End.String(),
		TotalDays:          resp.TotalDays,
		TotalPrice:         resp.TotalPrice.String(),
		TotalPriceCents:    resp.TotalPrice.Cents(),
		DepositAmount:      resp.DepositAmount.String(),
		DepositAmountCents: resp.DepositAmount.Cents(),
		Status:             string(resp.Status),
		PickupMethod:       string(resp.PickupMethod),
		Notes:              resp.Notes,
		DepositReleased:    resp.DepositReleased,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
