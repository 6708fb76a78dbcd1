package jobs

import (
	"context"
	"fmt"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

// ExpirePendingBookings отменяет бронирования, которые владелец не подтвердил за pendingTTL,
// и освобождает их даты
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func(ctx context.Context) {
		count, err := jr.expirePendingBookings(ctx)
		if err != nil {
			jr.logger.Error("ExpirePendingBookings: %v", err)
			return
		}
		jr.logger.Info("ExpirePendingBookings: expired %d bookings", count)
	})
}

func (jr *JobRunner) expirePendingBookings(ctx context.Context) (int, error) {
	cutoff := jr.now().Add(-jr.pendingTTL)

	ids, err := jr.bookingRepo.ExpirePending(ctx, cutoff, domain.ReasonPendingExpired)
	if err != nil {
		return 0, fmt.Errorf("failed to expire bookings created before %s: %w", cutoff.Format("2006-01-02 15:04:05"), err)
	}

	for _, id := range ids {
		booking, err := jr.bookingRepo.GetByID(ctx, id)
		if err != nil {
			jr.logger.Warn("ExpirePendingBookings: failed to reload booking id=%d: %v", id, err)
			continue
		}
		if err := jr.publisher.PublishBookingStatusChanged(ctx, booking, domain.StatusPending); err != nil {
			jr.logger.Error("ExpirePendingBookings: failed to publish event for booking id=%d: %v", id, err)
		}
	}

	return len(ids), nil
}
