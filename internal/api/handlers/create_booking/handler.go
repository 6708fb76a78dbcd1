package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMT-BookingService/internal/api/handlers"
	"github.com/m04kA/RMT-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/RMT-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgItemNotFound       = "вещь не найдена"
	msgSelfBooking        = "нельзя арендовать собственную вещь"
	msgRenterNotFound     = "арендатор не найден"
	msgRenterNotAllowed   = "арендатору запрещено бронирование"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	renterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(renterID))
	if err != nil {
		if handlers.RespondQuoteError(w, err) {
			h.logger.Warn("POST /bookings - Booking rejected: renter_id=%d, item_id=%d, range=[%s, %s), error=%v",
				renterID, req.ItemID, req.StartDate, req.EndDate, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: item_id=%d", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createBooking.ErrSelfBooking):
			h.logger.Warn("POST /bookings - Self booking: renter_id=%d, item_id=%d", renterID, req.ItemID)
			handlers.RespondForbidden(w, msgSelfBooking)

		case errors.Is(err, createBooking.ErrRenterNotFound):
			h.logger.Warn("POST /bookings - Renter not found: renter_id=%d", renterID)
			handlers.RespondNotFound(w, msgRenterNotFound)

		case errors.Is(err, createBooking.ErrRenterNotAllowed):
			h.logger.Warn("POST /bookings - Renter not allowed: renter_id=%d", renterID)
			handlers.RespondForbidden(w, msgRenterNotAllowed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: renter_id=%d, error=%v", renterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: renter_id=%d, item_id=%d, error=%v",
				renterID, req.ItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, renter_id=%d, item_id=%d",
		result.ID, renterID, req.ItemID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
