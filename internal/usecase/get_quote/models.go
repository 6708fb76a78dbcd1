package get_quote

import (
	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

// Request модель запроса расчета стоимости
type Request struct {
	ItemID    int64
	StartDate string // YYYY-MM-DD, включительно
	EndDate   string // YYYY-MM-DD, не включительно
}

// Response модель ответа с расчетом стоимости
type Response struct {
	ItemID        int64
	Range         domain.DateRange
	TotalDays     int
	PricePerDay   types.Money
	TotalPrice    types.Money
	DepositAmount types.Money
}
