package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMT-BookingService/internal/api/handlers"
	"github.com/m04kA/RMT-BookingService/internal/api/middleware"
	"github.com/m04kA/RMT-BookingService/internal/service/blocks"
)

const (
	msgInvalidItemID      = "некорректный ID вещи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgItemNotFound       = "вещь не найдена"
	msgForbidden          = "блокировать даты может только владелец вещи"
	msgInvalidReason      = "некорректная причина блокировки"
	msgInvalidRange       = "некорректный период блокировки"
	msgDatesTaken         = "период пересекается с занятыми датами"
	msgInvalidInput       = "некорректные данные блокировки"
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

// Handle POST /api/v1/items/{itemId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("POST /items/{id}/blocks - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /items/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /items/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.CreateBlock(r.Context(), req.ToServiceRequest(userID, itemID))
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrItemNotFound):
			h.logger.Warn("POST /items/{id}/blocks - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("POST /items/{id}/blocks - Access denied: item_id=%d, user_id=%d", itemID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blocks.ErrInvalidReason):
			h.logger.Warn("POST /items/{id}/blocks - Invalid reason: %s", req.Reason)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, blocks.ErrInvalidRange):
			h.logger.Warn("POST /items/{id}/blocks - Invalid range: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, blocks.ErrDateRangeConflict):
			h.logger.Warn("POST /items/{id}/blocks - Dates taken: item_id=%d, range=[%s, %s)",
				itemID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, msgDatesTaken)

		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /items/{id}/blocks - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /items/{id}/blocks - Failed to create block: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /items/{id}/blocks - Block created: block_id=%d, item_id=%d, user_id=%d",
		block.ID, itemID, userID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
