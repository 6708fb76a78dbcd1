package update_booking_status

import (
	"github.com/m04kA/RMT-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed active completed cancelled disputed"`
	Reason *string `json:"reason,omitempty"` // Причина отмены или спора
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
		Reason: r.Reason,
	}
}
