package get_item_availability

import (
	"context"

	"github.com/m04kA/RMT-BookingService/internal/service/blocks/models"
)

type AvailabilityService interface {
	ListWindows(ctx context.Context, itemID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
