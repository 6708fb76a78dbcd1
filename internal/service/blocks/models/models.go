package models

import (
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на блокировку дат владельцем
type CreateBlockRequest struct {
	UserID    int64   `json:"userId"`
	ItemID    int64   `json:"itemId"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    string  `json:"reason"` // maintenance | owner_blocked
	Note      *string `json:"note,omitempty"`
}

// Response модели

// WindowResponse окно недоступности в календаре вещи
type WindowResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
	BlockID   *int64 `json:"blockId,omitempty"`
}

// AvailabilityResponse календарь недоступности вещи
type AvailabilityResponse struct {
	ItemID      int64            `json:"itemId"`
	IsAvailable bool             `json:"isAvailable"`
	Windows     []WindowResponse `json:"windows"`
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"itemId"`
	OwnerID   int64     `json:"ownerId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    string    `json:"reason"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainWindows конвертирует окна в календарь.
// ID бронирований в публичный календарь не попадают
func FromDomainWindows(item *domain.Item, windows []domain.UnavailabilityWindow) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ItemID:      item.ID,
		IsAvailable: item.IsAvailable,
		Windows:     make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			StartDate: w.Range.Start.String(),
			EndDate:   w.Range.End.String(),
			Reason:    string(w.Reason),
			BlockID:   w.BlockID,
		})
	}

	return resp
}

// FromDomainBlock конвертирует блокировку в DTO
func FromDomainBlock(b *domain.OwnerBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:        b.ID,
		ItemID:    b.ItemID,
		OwnerID:   b.OwnerID,
		StartDate: b.Range.Start.String(),
		EndDate:   b.Range.End.String(),
		Reason:    string(b.Reason),
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
	}
}
