package get_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMT-BookingService/internal/api/handlers"
	getQuote "github.com/m04kA/RMT-BookingService/internal/usecase/get_quote"
)

const (
	msgInvalidItemID = "некорректный ID вещи"
	msgMissingDates  = "параметры startDate и endDate обязательны"
	msgItemNotFound  = "вещь не найдена"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/quote?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("GET /items/{id}/quote - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		h.logger.Warn("GET /items/{id}/quote - Missing dates: item_id=%d", itemID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getQuote.Request{
		ItemID:    itemID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		if handlers.RespondQuoteError(w, err) {
			h.logger.Warn("GET /items/{id}/quote - Quote rejected: item_id=%d, range=[%s, %s), error=%v",
				itemID, startDate, endDate, err)
			return
		}

		switch {
		case errors.Is(err, getQuote.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/quote - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /items/{id}/quote - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidItemID)

		default:
			h.logger.Error("GET /items/{id}/quote - Failed to compute quote: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/quote - Quote computed: item_id=%d, days=%d, total=%s",
		itemID, result.TotalDays, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
