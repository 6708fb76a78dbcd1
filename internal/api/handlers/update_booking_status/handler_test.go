package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/RMT-BookingService/internal/api/middleware"
	"github.com/m04kA/RMT-BookingService/internal/service/bookings"
	"github.com/m04kA/RMT-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RMT-BookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(bookingID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	return req.WithContext(middleware.WithUserID(req.Context(), 20))
}

func TestHandler_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, int64(42), &models.UpdateStatusRequest{UserID: 20, Status: "confirmed"}).
		Return(&models.BookingResponse{ID: 42, Status: "confirmed"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest("42", `{"status":"confirmed"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "bad id", bookingID: "x", body: `{"status":"confirmed"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown status", bookingID: "42", body: `{"status":"lost"}`, wantStatus: http.StatusBadRequest},
		{name: "empty body", bookingID: "42", body: ``, wantStatus: http.StatusBadRequest},
		{name: "not found", bookingID: "42", body: `{"status":"confirmed"}`, svcErr: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "renter confirms", bookingID: "42", body: `{"status":"confirmed"}`, svcErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "illegal transition", bookingID: "42", body: `{"status":"active"}`, svcErr: bookings.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "internal", bookingID: "42", body: `{"status":"completed"}`, svcErr: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(tt.bookingID, tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
