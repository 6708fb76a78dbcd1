package get_owner_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/RMT-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(ownerID, requesterID int64, query url.Values) (*models.GetOwnerBookingsRequest, error) {
	req := &models.GetOwnerBookingsRequest{
		RequesterID: requesterID,
		OwnerID:     ownerID,
	}

	if raw := query.Get("itemId"); raw != "" {
		itemID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || itemID <= 0 {
			return nil, fmt.Errorf("invalid itemId %q", raw)
		}
		req.ItemID = &itemID
	}

	if raw := query.Get("from"); raw != "" {
		req.From = &raw
	}

	if raw := query.Get("to"); raw != "" {
		req.To = &raw
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	// По умолчанию только бронирования, занимающие даты
	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive %q", raw)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
