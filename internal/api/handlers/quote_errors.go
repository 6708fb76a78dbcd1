package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

const (
	msgInvalidDateFormat   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange        = "дата окончания должна быть позже даты начала"
	msgRangeInPast         = "дата начала аренды уже прошла"
	msgItemUnavailable     = "вещь недоступна для аренды"
	msgDateRangeConflict   = "выбранные даты заняты"
	msgInvalidPickupMethod = "некорректный способ передачи вещи"
	msgInvalidItem         = "у вещи некорректная цена или залог"
	msgNotesTooLong        = "слишком длинная заметка"
)

// ConflictDetails окно недоступности, с которым пересекся запрошенный период
type ConflictDetails struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// RespondQuoteError отвечает на ошибку расчета стоимости.
// Возвращает false, если ошибка не относится к расчету.
func RespondQuoteError(w http.ResponseWriter, err error) bool {
	if conflict, ok := quote.AsConflict(err); ok {
		RespondErrorWithDetails(w, http.StatusConflict, msgDateRangeConflict, ConflictDetails{
			StartDate: conflict.Window.Range.Start.String(),
			EndDate:   conflict.Window.Range.End.String(),
			Reason:    string(conflict.Window.Reason),
		})
		return true
	}

	switch {
	case errors.Is(err, quote.ErrDateRangeConflict):
		RespondConflict(w, msgDateRangeConflict)
	case errors.Is(err, quote.ErrInvalidDateFormat):
		RespondBadRequest(w, msgInvalidDateFormat)
	case errors.Is(err, quote.ErrInvalidRange):
		RespondBadRequest(w, msgInvalidRange)
	case errors.Is(err, quote.ErrRangeInPast):
		RespondBadRequest(w, msgRangeInPast)
	case errors.Is(err, quote.ErrInvalidPickupMethod):
		RespondBadRequest(w, msgInvalidPickupMethod)
	case errors.Is(err, quote.ErrNotesTooLong):
		RespondBadRequest(w, msgNotesTooLong)
	case errors.Is(err, quote.ErrItemUnavailable):
		RespondConflict(w, msgItemUnavailable)
	case errors.Is(err, quote.ErrInvalidItem):
		RespondUnprocessable(w, msgInvalidItem)
	default:
		return false
	}

	return true
}
