package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMT-BookingService/internal/api/handlers"
	"github.com/m04kA/RMT-BookingService/internal/api/middleware"
	"github.com/m04kA/RMT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
	createBooking "github.com/m04kA/RMT-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/RMT-BookingService/pkg/logger"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{"itemId":3,"startDate":"2025-01-10","endDate":"2025-01-13","pickupMethod":"delivery","notes":"after 6pm"}`

func newRequest(body string, userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.RenterID == 10 &&
			req.ItemID == 3 &&
			req.PickupMethod == domain.PickupMethodDelivery &&
			req.Notes != nil && *req.Notes == "after 6pm"
	})).Return(&createBooking.Response{
		ID:            42,
		ItemID:        3,
		RenterID:      10,
		OwnerID:       20,
		Range:         domain.NewDateRange(types.MustParseDate("2025-01-10"), types.MustParseDate("2025-01-13")),
		TotalDays:     3,
		TotalPrice:    types.Cents(7500),
		DepositAmount: types.Cents(10000),
		Status:        domain.StatusPending,
		PickupMethod:  domain.PickupMethodDelivery,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(validBody, 10))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, "75.00", body.TotalPrice)
	assert.Equal(t, "2025-01-01T12:00:00Z", body.CreatedAt)
	uc.AssertExpectations(t)
}

func TestHandler_DefaultPickupMethod(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.PickupMethod == domain.PickupMethodPickup
	})).Return(nil, createBooking.ErrItemNotFound)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec,
		newRequest(`{"itemId":3,"startDate":"2025-01-10","endDate":"2025-01-13"}`, 10))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		wantStatus int
	}{
		{name: "no user", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "malformed json", body: `{"itemId":`, userID: 10, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"itemId":3,"startDate":"2025-01-10","endDate":"2025-01-13","price":1}`, userID: 10, wantStatus: http.StatusBadRequest},
		{name: "missing item", body: `{"startDate":"2025-01-10","endDate":"2025-01-13"}`, userID: 10, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(tt.body, tt.userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_UnknownPickupMethod(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.PickupMethod == domain.PickupMethod("drone")
	})).Return(nil, fmt.Errorf("%w: %q", quote.ErrInvalidPickupMethod, "drone"))

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec,
		newRequest(`{"itemId":3,"startDate":"2025-01-10","endDate":"2025-01-13","pickupMethod":"drone"}`, 10))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "некорректный способ передачи вещи", body.Error)
	uc.AssertExpectations(t)
}

func TestHandler_MapsUseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "conflict window", err: &quote.ConflictError{Window: domain.UnavailabilityWindow{Reason: domain.WindowReasonMaintenance}}, wantStatus: http.StatusConflict},
		{name: "conflict from storage", err: fmt.Errorf("%w: %v", quote.ErrDateRangeConflict, bookingRepo.ErrDateRangeConflict), wantStatus: http.StatusConflict},
		{name: "range in past", err: quote.ErrRangeInPast, wantStatus: http.StatusBadRequest},
		{name: "self booking", err: createBooking.ErrSelfBooking, wantStatus: http.StatusForbidden},
		{name: "renter blocked", err: createBooking.ErrRenterNotAllowed, wantStatus: http.StatusForbidden},
		{name: "renter not found", err: createBooking.ErrRenterNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(validBody, 10))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
