package delete_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMT-BookingService/internal/api/handlers"
	"github.com/m04kA/RMT-BookingService/internal/api/middleware"
	"github.com/m04kA/RMT-BookingService/internal/service/blocks"
)

const (
	msgInvalidID     = "некорректный ID вещи или блокировки"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "блокировка не найдена"
	msgForbidden     = "снять блокировку может только владелец вещи"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/items/{itemId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("DELETE /items/{id}/blocks/{blockId} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	blockID, err := handlers.PathInt64(r, "blockId")
	if err != nil {
		h.logger.Warn("DELETE /items/{id}/blocks/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /items/{id}/blocks/{blockId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteBlock(r.Context(), userID, itemID, blockID); err != nil {
		switch {
		case errors.Is(err, blocks.ErrItemNotFound), errors.Is(err, blocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /items/{id}/blocks/{blockId} - Not found: item_id=%d, block_id=%d", itemID, blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("DELETE /items/{id}/blocks/{blockId} - Access denied: item_id=%d, user_id=%d", itemID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /items/{id}/blocks/{blockId} - Failed to delete block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /items/{id}/blocks/{blockId} - Block deleted: block_id=%d, user_id=%d", blockID, userID)
	w.WriteHeader(http.StatusNoContent)
}
