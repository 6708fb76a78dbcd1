package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/booking"
	itemRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/item"
	windowRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/window"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

func dateRange(start, end string) domain.DateRange {
	return domain.NewDateRange(types.MustParseDate(start), types.MustParseDate(end))
}

func pendingBooking(itemID int64, start, end string) *domain.Booking {
	return &domain.Booking{
		ItemID:       itemID,
		RenterID:     10,
		OwnerID:      100,
		Range:        dateRange(start, end),
		Status:       domain.StatusPending,
		PickupMethod: domain.PickupMethodPickup,
	}
}

func TestItemRepository_GetByID(t *testing.T) {
	store := NewStore(DemoItems()...)

	item, err := store.Items().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), item.OwnerID)

	_, err = store.Items().GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, itemRepo.ErrItemNotFound)
}

func TestBookingRepository_Create_RejectsOverlap(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	first, err := repo.Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-15"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = repo.Create(ctx, pendingBooking(1, "2025-01-12", "2025-01-14"))
	assert.ErrorIs(t, err, bookingRepo.ErrDateRangeConflict)

	// Соседний период и другая вещь не конфликтуют
	_, err = repo.Create(ctx, pendingBooking(1, "2025-01-15", "2025-01-20"))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, pendingBooking(2, "2025-01-12", "2025-01-14"))
	assert.NoError(t, err)
}

func TestBookingRepository_CancelledBookingFreesDates(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	first, err := repo.Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-15"))
	require.NoError(t, err)
	require.NoError(t, repo.Cancel(ctx, first.ID, "changed plans"))

	second, err := repo.Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-15"))
	require.NoError(t, err)

	cancelled, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "changed plans", *cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	// Спор по отмененному бронированию даты не возвращает
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.StatusDisputed))

	disputed, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisputed, disputed.Status)
	require.NotNil(t, disputed.DisputedFrom)
	assert.Equal(t, domain.StatusCancelled, *disputed.DisputedFrom)

	windows, err := store.Windows().GetActiveWindows(ctx, 1)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, second.ID, *windows[0].BookingID)
}

func TestBookingRepository_DisputeOfActiveRentalKeepsDates(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	b, err := repo.Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-15"))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.StatusConfirmed))
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.StatusDisputed))

	windows, err := store.Windows().GetActiveWindows(ctx, 1)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, b.ID, *windows[0].BookingID)

	_, err = repo.Create(ctx, pendingBooking(1, "2025-01-12", "2025-01-13"))
	assert.ErrorIs(t, err, bookingRepo.ErrDateRangeConflict)
}

func TestBookingRepository_GetByOwnerWithFilter(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	a, _ := repo.Create(ctx, pendingBooking(1, "2025-02-01", "2025-02-03"))
	b, _ := repo.Create(ctx, pendingBooking(2, "2025-01-20", "2025-01-22"))
	c, _ := repo.Create(ctx, pendingBooking(1, "2025-01-05", "2025-01-07"))
	require.NoError(t, repo.Cancel(ctx, c.ID, "no longer needed"))

	active, err := repo.GetByOwnerWithFilter(ctx, domain.OwnerBookingsFilter{OwnerID: 100})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b.ID, active[0].ID)
	assert.Equal(t, a.ID, active[1].ID)

	all, err := repo.GetByOwnerWithFilter(ctx, domain.OwnerBookingsFilter{OwnerID: 100, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	itemID := int64(1)
	from := types.MustParseDate("2025-01-07")
	filtered, err := repo.GetByOwnerWithFilter(ctx, domain.OwnerBookingsFilter{
		OwnerID:         100,
		ItemID:          &itemID,
		From:            &from,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, a.ID, filtered[0].ID)
}

func TestBookingRepository_ExpirePending(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	store.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	old, _ := repo.Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-12"))

	store.now = func() time.Time { return time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC) }
	fresh, _ := repo.Create(ctx, pendingBooking(1, "2025-01-12", "2025-01-14"))

	ids, err := repo.ExpirePending(ctx, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), domain.ReasonPendingExpired)

	require.NoError(t, err)
	assert.Equal(t, []int64{old.ID}, ids)

	expired, _ := repo.GetByID(ctx, old.ID)
	assert.Equal(t, domain.StatusCancelled, expired.Status)
	kept, _ := repo.GetByID(ctx, fresh.ID)
	assert.Equal(t, domain.StatusPending, kept.Status)
}

func TestWindowRepository_Blocks(t *testing.T) {
	store := NewStore()
	repo := store.Windows()
	ctx := context.Background()

	_, err := store.Bookings().Create(ctx, pendingBooking(1, "2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	block, err := repo.CreateBlock(ctx, &domain.OwnerBlock{
		ItemID:  1,
		OwnerID: 100,
		Range:   dateRange("2025-03-01", "2025-03-05"),
		Reason:  domain.WindowReasonMaintenance,
	})
	require.NoError(t, err)

	windows, err := repo.GetActiveWindows(ctx, 1)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, domain.WindowReasonMaintenance, windows[0].Reason)
	assert.Equal(t, domain.WindowReasonBooked, windows[1].Reason)

	require.NoError(t, repo.DeleteBlock(ctx, block.ID))
	assert.ErrorIs(t, repo.DeleteBlock(ctx, block.ID), windowRepo.ErrBlockNotFound)

	_, err = repo.GetBlockByID(ctx, block.ID)
	assert.ErrorIs(t, err, windowRepo.ErrBlockNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()
	errBusiness := errors.New("business rule violated")

	err := tx.DoSerializable(context.Background(), func(ctx context.Context) error {
		if _, err := store.Bookings().Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-12")); err != nil {
			return err
		}
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)

	windows, err := store.Windows().GetActiveWindows(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, windows)

	// Счетчик ID тоже откатывается
	created, err := store.Bookings().Create(context.Background(), pendingBooking(1, "2025-01-10", "2025-01-12"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestTxManager_NestedReusesOuter(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		return tx.DoSerializable(ctx, func(ctx context.Context) error {
			_, err := store.Bookings().Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-12"))
			return err
		})
	})

	require.NoError(t, err)
	_, err = store.Bookings().GetByID(context.Background(), 1)
	assert.NoError(t, err)
}

func TestTxManager_RollbackOnPanic(t *testing.T) {
	store := NewStore()
	tx := store.TxManager()

	assert.Panics(t, func() {
		_ = tx.Do(context.Background(), func(ctx context.Context) error {
			_, _ = store.Bookings().Create(ctx, pendingBooking(1, "2025-01-10", "2025-01-12"))
			panic("boom")
		})
	})

	_, err := store.Bookings().GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestWindowRepository_CreateBlock_RejectsOverlappingBlock(t *testing.T) {
	store := NewStore()
	repo := store.Windows()
	ctx := context.Background()

	_, err := repo.CreateBlock(ctx, &domain.OwnerBlock{
		ItemID:  1,
		OwnerID: 100,
		Range:   dateRange("2025-03-01", "2025-03-05"),
		Reason:  domain.WindowReasonMaintenance,
	})
	require.NoError(t, err)

	_, err = repo.CreateBlock(ctx, &domain.OwnerBlock{
		ItemID:  1,
		OwnerID: 100,
		Range:   dateRange("2025-03-04", "2025-03-08"),
		Reason:  domain.WindowReasonOwnerBlocked,
	})
	assert.ErrorIs(t, err, windowRepo.ErrDateRangeConflict)

	_, err = repo.CreateBlock(ctx, &domain.OwnerBlock{
		ItemID:  1,
		OwnerID: 100,
		Range:   dateRange("2025-03-05", "2025-03-08"),
		Reason:  domain.WindowReasonOwnerBlocked,
	})
	assert.NoError(t, err)
}
