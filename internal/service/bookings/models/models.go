package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid filter date")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID int64   `json:"userId"`
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"` // Причина отмены или спора
}

// GetRenterBookingsRequest запрос на получение бронирований арендатора
type GetRenterBookingsRequest struct {
	RequesterID int64   `json:"requesterId"`
	RenterID    int64   `json:"renterId"`
	Status      *string `json:"status,omitempty"`
}

// GetOwnerBookingsRequest запрос на получение бронирований вещей владельца
type GetOwnerBookingsRequest struct {
	RequesterID     int64   `json:"requesterId"`
	OwnerID         int64   `json:"ownerId"`
	ItemID          *int64  `json:"itemId,omitempty"`          // Фильтр по вещи (опционально)
	From            *string `json:"from,omitempty"`            // Начало периода YYYY-MM-DD (опционально)
	To              *string `json:"to,omitempty"`              // Конец периода YYYY-MM-DD (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOwnerBookingsRequest) ToDomainFilter() (domain.OwnerBookingsFilter, error) {
	filter := domain.OwnerBookingsFilter{
		OwnerID:         r.OwnerID,
		ItemID:          r.ItemID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.From != nil {
		from, err := types.ParseDate(*r.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from: %v", ErrInvalidDate, err)
		}
		filter.From = &from
	}

	if r.To != nil {
		to, err := types.ParseDate(*r.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to: %v", ErrInvalidDate, err)
		}
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return filter, fmt.Errorf("%w: to must be after from", ErrInvalidDate)
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	ItemID    int64  `json:"itemId"`
	RenterID  int64  `json:"renterId"`
	OwnerID   int64  `json:"ownerId"`
	StartDate string `json:"startDate"` // "2025-10-15", включительно
	EndDate   string `json:"endDate"`   // "2025-10-18", не включительно
	TotalDays int    `json:"totalDays"`

	TotalPrice         string `json:"totalPrice"` // "75.00"
	TotalPriceCents    int64  `json:"totalPriceCents"`
	DepositAmount      string `json:"depositAmount"`
	DepositAmountCents int64  `json:"depositAmountCents"`

	Status          string  `json:"status"`
	PickupMethod    string  `json:"pickupMethod"`
	Notes           *string `json:"notes,omitempty"`
	DepositReleased bool    `json:"depositReleased"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	DisputedFrom       *string `json:"disputedFrom,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ItemID:             b.ItemID,
		RenterID:           b.RenterID,
		OwnerID:            b.OwnerID,
		StartDate:          b.Range.Start.String(),
		EndDate:            b.Range.End.String(),
		TotalDays:          b.TotalDays,
		TotalPrice:         b.TotalPrice.String(),
		TotalPriceCents:    b.TotalPrice.Cents(),
		DepositAmount:      b.DepositAmount.String(),
		DepositAmountCents: b.DepositAmount.Cents(),
		Status:             string(b.Status),
		PickupMethod:       string(b.PickupMethod),
		Notes:              b.Notes,
		DepositReleased:    b.DepositReleased,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if b.DisputedFrom != nil {
		from := string(*b.DisputedFrom)
		resp.DisputedFrom = &from
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}
