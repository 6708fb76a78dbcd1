package get_item_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMT-BookingService/internal/api/handlers"
	"github.com/m04kA/RMT-BookingService/internal/service/blocks"
)

const (
	msgInvalidItemID = "некорректный ID вещи"
	msgItemNotFound  = "вещь не найдена"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("GET /items/{id}/availability - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	result, err := h.service.ListWindows(r.Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrItemNotFound):
			h.logger.Warn("GET /items/{id}/availability - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("GET /items/{id}/availability - Failed to list windows: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/availability - Windows retrieved: item_id=%d, count=%d", itemID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
