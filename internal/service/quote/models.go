package quote

import (
	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// RangeRequest запрошенный период аренды в исходном строковом виде (YYYY-MM-DD)
type RangeRequest struct {
	StartDate string
	EndDate   string
}

// Quote расчет стоимости аренды. Возвращается по значению и не меняется после расчета.
type Quote struct {
	Range         domain.DateRange
	TotalDays     int
	TotalPrice    types.Money
	DepositAmount types.Money
}

// DraftRequest данные для черновика бронирования
type DraftRequest struct {
	Range        RangeRequest
	RenterID     int64
	PickupMethod domain.PickupMethod
	Notes        *string
}
