package quote

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/ptr"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func newTestEngine() *Engine {
	return NewEngine(fixedTime{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}, time.UTC)
}

func testItem() *domain.Item {
	return &domain.Item{
		ID:            1,
		OwnerID:       100,
		Title:         "Silk evening dress",
		Category:      domain.CategoryDress,
		Size:          "M",
		Condition:     domain.ConditionExcellent,
		PricePerDay:   types.Cents(2500),
		DepositAmount: types.Cents(10000),
		IsAvailable:   true,
	}
}

func window(itemID int64, start, end string, reason domain.WindowReason) domain.UnavailabilityWindow {
	return domain.UnavailabilityWindow{
		ItemID: itemID,
		Range:  domain.NewDateRange(types.MustParseDate(start), types.MustParseDate(end)),
		Reason: reason,
	}
}

func TestComputeQuote_Pricing(t *testing.T) {
	engine := newTestEngine()

	t.Run("one day", func(t *testing.T) {
		q, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-11"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, q.TotalDays)
		assert.Equal(t, types.Cents(2500), q.TotalPrice)
	})

	t.Run("seven days", func(t *testing.T) {
		q, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-17"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 7, q.TotalDays)
	})

	t.Run("25 per day for 3 days is 75.00", func(t *testing.T) {
		q, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-13"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, q.TotalDays)
		assert.Equal(t, "75.00", q.TotalPrice.String())
		assert.Equal(t, types.Cents(10000), q.DepositAmount)
	})

	t.Run("19.99 per day for 1000 days is exact", func(t *testing.T) {
		item := testItem()
		item.PricePerDay = types.Cents(1999)

		start := types.MustParseDate("2025-01-10")
		end := start.AddDays(1000)

		q, err := engine.ComputeQuote(item, RangeRequest{StartDate: start.String(), EndDate: end.String()}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1000, q.TotalDays)
		assert.Equal(t, int64(1999000), q.TotalPrice.Cents())
		assert.Equal(t, "19990.00", q.TotalPrice.String())
	})

	t.Run("total price overflow is rejected", func(t *testing.T) {
		item := testItem()
		item.PricePerDay = types.Cents(math.MaxInt64 / 2)

		_, err := engine.ComputeQuote(item, RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-13"}, nil)

		assert.ErrorIs(t, err, ErrInvalidItem)
		assert.ErrorIs(t, err, types.ErrMoneyOverflow)
	})

	t.Run("zero deposit is copied", func(t *testing.T) {
		item := testItem()
		item.DepositAmount = 0

		q, err := engine.ComputeQuote(item, RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-12"}, nil)
		require.NoError(t, err)
		assert.Equal(t, types.Cents(0), q.DepositAmount)
	})

	t.Run("start today is allowed", func(t *testing.T) {
		q, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-01", EndDate: "2025-01-02"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, q.TotalDays)
	})
}

func TestComputeQuote_Idempotent(t *testing.T) {
	engine := newTestEngine()
	windows := []domain.UnavailabilityWindow{
		window(1, "2025-02-01", "2025-02-05", domain.WindowReasonBooked),
	}
	req := RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-15"}

	first, err1 := engine.ComputeQuote(testItem(), req, windows)
	second, err2 := engine.ComputeQuote(testItem(), req, windows)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestComputeQuote_Overlap(t *testing.T) {
	engine := newTestEngine()
	existing := []domain.UnavailabilityWindow{
		window(1, "2025-01-10", "2025-01-15", domain.WindowReasonBooked),
	}

	t.Run("range inside existing window conflicts", func(t *testing.T) {
		_, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-12", EndDate: "2025-01-14"}, existing)
		require.ErrorIs(t, err, ErrDateRangeConflict)

		conflict, ok := AsConflict(err)
		require.True(t, ok)
		assert.Equal(t, existing[0], conflict.Window)
	})

	t.Run("range starting on return day is free", func(t *testing.T) {
		q, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-15", EndDate: "2025-01-20"}, existing)
		require.NoError(t, err)
		assert.Equal(t, 5, q.TotalDays)
	})

	t.Run("range ending on start day is free", func(t *testing.T) {
		_, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-05", EndDate: "2025-01-10"}, existing)
		assert.NoError(t, err)
	})

	t.Run("owner blocked window conflicts", func(t *testing.T) {
		blocked := []domain.UnavailabilityWindow{
			window(1, "2025-03-01", "2025-03-10", domain.WindowReasonOwnerBlocked),
		}
		_, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-02-25", EndDate: "2025-03-02"}, blocked)

		conflict, ok := AsConflict(err)
		require.True(t, ok)
		assert.Equal(t, domain.WindowReasonOwnerBlocked, conflict.Window.Reason)
	})

	t.Run("earliest conflicting window is reported regardless of order", func(t *testing.T) {
		windows := []domain.UnavailabilityWindow{
			window(1, "2025-01-20", "2025-01-22", domain.WindowReasonMaintenance),
			window(1, "2025-01-12", "2025-01-13", domain.WindowReasonBooked),
		}
		_, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-25"}, windows)

		conflict, ok := AsConflict(err)
		require.True(t, ok)
		assert.Equal(t, windows[1], conflict.Window)
	})

	t.Run("windows of other items are ignored", func(t *testing.T) {
		other := []domain.UnavailabilityWindow{
			window(2, "2025-01-10", "2025-01-15", domain.WindowReasonBooked),
		}
		_, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-12", EndDate: "2025-01-14"}, other)
		assert.NoError(t, err)
	})
}

func TestComputeQuote_ValidationOrder(t *testing.T) {
	engine := newTestEngine()
	conflicting := []domain.UnavailabilityWindow{
		window(1, "2024-12-01", "2025-12-31", domain.WindowReasonBooked),
	}
	unavailable := testItem()
	unavailable.IsAvailable = false

	tests := []struct {
		name    string
		item    *domain.Item
		req     RangeRequest
		windows []domain.UnavailabilityWindow
		wantErr error
	}{
		{
			name:    "bad start date wins over everything",
			item:    unavailable,
			req:     RangeRequest{StartDate: "2025-13-01", EndDate: "2024-01-01"},
			windows: conflicting,
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "bad end date",
			item:    testItem(),
			req:     RangeRequest{StartDate: "2025-01-10", EndDate: "10/01/2025"},
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "start equal to end",
			item:    unavailable,
			req:     RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-10"},
			windows: conflicting,
			wantErr: ErrInvalidRange,
		},
		{
			name:    "end before start",
			item:    testItem(),
			req:     RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-09"},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "range in past before availability",
			item:    unavailable,
			req:     RangeRequest{StartDate: "2024-12-31", EndDate: "2025-01-03"},
			windows: conflicting,
			wantErr: ErrRangeInPast,
		},
		{
			name:    "unavailable item before conflict",
			item:    unavailable,
			req:     RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-12"},
			windows: conflicting,
			wantErr: ErrItemUnavailable,
		},
		{
			name:    "unavailable item with free dates",
			item:    unavailable,
			req:     RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-12"},
			wantErr: ErrItemUnavailable,
		},
		{
			name:    "conflict",
			item:    testItem(),
			req:     RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-12"},
			windows: conflicting,
			wantErr: ErrDateRangeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ComputeQuote(tt.item, tt.req, tt.windows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestComputeQuote_InvalidItem(t *testing.T) {
	engine := newTestEngine()
	req := RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-12"}

	_, err := engine.ComputeQuote(nil, req, nil)
	assert.ErrorIs(t, err, ErrInvalidItem)

	free := testItem()
	free.PricePerDay = 0
	_, err = engine.ComputeQuote(free, req, nil)
	assert.ErrorIs(t, err, ErrInvalidItem)

	negativeDeposit := testItem()
	negativeDeposit.DepositAmount = types.Cents(-1)
	_, err = engine.ComputeQuote(negativeDeposit, req, nil)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestEngine_TodayUsesLocation(t *testing.T) {
	// 2025-01-01 20:00 UTC это уже 2 января во Владивостоке
	now := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	vladivostok := time.FixedZone("VLAT", 10*60*60)

	engine := NewEngine(fixedTime{now: now}, vladivostok)
	assert.Equal(t, types.MustParseDate("2025-01-02"), engine.Today())

	_, err := engine.ComputeQuote(testItem(), RangeRequest{StartDate: "2025-01-01", EndDate: "2025-01-03"}, nil)
	assert.ErrorIs(t, err, ErrRangeInPast)
}

func TestCreateBookingDraft(t *testing.T) {
	engine := newTestEngine()
	req := RangeRequest{StartDate: "2025-01-10", EndDate: "2025-01-13"}

	t.Run("success", func(t *testing.T) {
		item := testItem()
		draft, err := engine.CreateBookingDraft(item, req, nil, 55, domain.PickupMethodDelivery, ptr.Ptr("  leave at the door  "))
		require.NoError(t, err)

		assert.Zero(t, draft.ID)
		assert.Equal(t, item.ID, draft.ItemID)
		assert.Equal(t, int64(55), draft.RenterID)
		assert.Equal(t, item.OwnerID, draft.OwnerID)
		assert.Equal(t, domain.StatusPending, draft.Status)
		assert.False(t, draft.DepositReleased)
		assert.Equal(t, 3, draft.TotalDays)
		assert.Equal(t, types.Cents(7500), draft.TotalPrice)
		assert.Equal(t, item.DepositAmount, draft.DepositAmount)
		assert.Equal(t, domain.PickupMethodDelivery, draft.PickupMethod)
		require.NotNil(t, draft.Notes)
		assert.Equal(t, "leave at the door", *draft.Notes)
		assert.Equal(t, "2025-01-10", draft.Range.Start.String())
		assert.Equal(t, "2025-01-13", draft.Range.End.String())
	})

	t.Run("blank notes become nil", func(t *testing.T) {
		draft, err := engine.CreateBookingDraft(testItem(), req, nil, 55, domain.PickupMethodPickup, ptr.Ptr("   "))
		require.NoError(t, err)
		assert.Nil(t, draft.Notes)
	})

	t.Run("invalid pickup method", func(t *testing.T) {
		_, err := engine.CreateBookingDraft(testItem(), req, nil, 55, domain.PickupMethod("teleport"), nil)
		assert.ErrorIs(t, err, ErrInvalidPickupMethod)
	})

	t.Run("quote errors come first", func(t *testing.T) {
		_, err := engine.CreateBookingDraft(testItem(), RangeRequest{StartDate: "bad", EndDate: "2025-01-13"}, nil, 55, "teleport", nil)
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("conflict with windows", func(t *testing.T) {
		windows := []domain.UnavailabilityWindow{window(1, "2025-01-12", "2025-01-20", domain.WindowReasonBooked)}
		_, err := engine.CreateBookingDraft(testItem(), req, windows, 55, domain.PickupMethodPickup, nil)
		assert.ErrorIs(t, err, ErrDateRangeConflict)
	})

	t.Run("notes too long", func(t *testing.T) {
		long := strings.Repeat("я", domain.MaxNotesLength+1)
		_, err := engine.CreateBookingDraft(testItem(), req, nil, 55, domain.PickupMethodPickup, &long)
		assert.ErrorIs(t, err, ErrNotesTooLong)
	})
}

func TestValidateRange(t *testing.T) {
	engine := newTestEngine()

	r, err := engine.ValidateRange(RangeRequest{StartDate: "2025-02-01", EndDate: "2025-02-03"})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Days())

	_, err = engine.ValidateRange(RangeRequest{StartDate: "2024-02-01", EndDate: "2025-02-03"})
	assert.ErrorIs(t, err, ErrRangeInPast)
}
