package create_block

import (
	"github.com/m04kA/RMT-BookingService/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   string  `json:"endDate" validate:"required"`
	Reason    string  `json:"reason" validate:"required,oneof=maintenance owner_blocked"`
	Note      *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(userID, itemID int64) *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:    userID,
		ItemID:    itemID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Reason:    r.Reason,
		Note:      r.Note,
	}
}
