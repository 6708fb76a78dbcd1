package blocks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/RMT-BookingService/internal/service/blocks/models"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
	"github.com/m04kA/RMT-BookingService/pkg/logger"
	"github.com/m04kA/RMT-BookingService/pkg/ptr"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

const ownerID = int64(20)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore(domain.Item{
		ID:            3,
		OwnerID:       ownerID,
		PricePerDay:   types.Cents(2500),
		DepositAmount: types.Cents(10000),
		IsAvailable:   true,
	})
	engine := quote.NewEngine(fixedTime{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}, time.UTC)

	return NewService(store.Items(), store.Windows(), engine, store.TxManager(), logger.NewNop()), store
}

func blockRequest(start, end string) *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:    ownerID,
		ItemID:    3,
		StartDate: start,
		EndDate:   end,
		Reason:    "maintenance",
		Note:      ptr.Ptr(" dry cleaning "),
	}
}

func TestService_CreateBlock(t *testing.T) {
	svc, _ := newService(t)

	resp, err := svc.CreateBlock(context.Background(), blockRequest("2025-01-10", "2025-01-12"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "maintenance", resp.Reason)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "dry cleaning", *resp.Note)

	availability, err := svc.ListWindows(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, availability.Windows, 1)
	assert.Equal(t, "2025-01-10", availability.Windows[0].StartDate)
	assert.Equal(t, &resp.ID, availability.Windows[0].BlockID)
}

func TestService_CreateBlock_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.CreateBlockRequest)
		wantErr error
	}{
		{"booked is not an owner reason", func(r *models.CreateBlockRequest) { r.Reason = "booked" }, ErrInvalidReason},
		{"bad date", func(r *models.CreateBlockRequest) { r.StartDate = "2025-1-10" }, quote.ErrInvalidDateFormat},
		{"empty range", func(r *models.CreateBlockRequest) { r.EndDate = r.StartDate }, quote.ErrInvalidRange},
		{"past", func(r *models.CreateBlockRequest) { r.StartDate = "2024-12-01" }, quote.ErrRangeInPast},
		{"long note", func(r *models.CreateBlockRequest) { r.Note = ptr.Ptr(strings.Repeat("a", 256)) }, ErrInvalidInput},
		{"not owner", func(r *models.CreateBlockRequest) { r.UserID = 99 }, ErrAccessDenied},
		{"unknown item", func(r *models.CreateBlockRequest) { r.ItemID = 99 }, ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			req := blockRequest("2025-01-10", "2025-01-12")
			tt.mutate(req)

			_, err := svc.CreateBlock(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_CreateBlock_RangeErrorsAreInvalidRange(t *testing.T) {
	svc, _ := newService(t)
	req := blockRequest("2025-01-10", "2025-01-12")
	req.StartDate = "2024-12-01"

	_, err := svc.CreateBlock(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_CreateBlock_OverlapsBooking(t *testing.T) {
	svc, store := newService(t)
	_, err := store.Bookings().Create(context.Background(), &domain.Booking{
		ItemID:   3,
		RenterID: 10,
		OwnerID:  ownerID,
		Range:    domain.NewDateRange(types.MustParseDate("2025-01-11"), types.MustParseDate("2025-01-15")),
		Status:   domain.StatusConfirmed,
	})
	require.NoError(t, err)

	_, err = svc.CreateBlock(context.Background(), blockRequest("2025-01-10", "2025-01-12"))
	assert.ErrorIs(t, err, ErrDateRangeConflict)

	// Блокировка вплотную к бронированию допустима
	_, err = svc.CreateBlock(context.Background(), blockRequest("2025-01-15", "2025-01-17"))
	assert.NoError(t, err)
}

func TestService_DeleteBlock(t *testing.T) {
	svc, _ := newService(t)
	block, err := svc.CreateBlock(context.Background(), blockRequest("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteBlock(context.Background(), 99, 3, block.ID), ErrAccessDenied)
	assert.ErrorIs(t, svc.DeleteBlock(context.Background(), ownerID, 4, block.ID), ErrBlockNotFound)

	require.NoError(t, svc.DeleteBlock(context.Background(), ownerID, 3, block.ID))
	assert.ErrorIs(t, svc.DeleteBlock(context.Background(), ownerID, 3, block.ID), ErrBlockNotFound)

	availability, err := svc.ListWindows(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, availability.Windows)
}

func TestService_ListWindows_UnknownItem(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ListWindows(context.Background(), 99)

	assert.ErrorIs(t, err, ErrItemNotFound)
}
