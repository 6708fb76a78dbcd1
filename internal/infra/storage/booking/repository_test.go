package booking

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RMT-BookingService/pkg/ptr"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.New(db)), mock
}

func draft() *domain.Booking {
	return &domain.Booking{
		ItemID:   3,
		RenterID: 10,
		OwnerID:  20,
		Range: domain.NewDateRange(
			types.MustParseDate("2025-01-10"),
			types.MustParseDate("2025-01-13"),
		),
		TotalDays:     3,
		TotalPrice:    types.Cents(7500),
		DepositAmount: types.Cents(10000),
		Status:        domain.StatusPending,
		PickupMethod:  domain.PickupMethodPickup,
		Notes:         ptr.Ptr("evening pickup"),
	}
}

func bookingRow(id int64, status string) []driver.Value {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, int64(3), int64(10), int64(20),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		int64(3), int64(7500), int64(10000),
		status, "pickup", nil, false, nil, nil, nil, now, now,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(
			int64(3), int64(10), int64(20),
			"2025-01-10", "2025-01-13",
			3, int64(7500), int64(10000),
			"pending", "pickup", "evening pickup", false,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), draft())

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: pqExclusionViolation, Constraint: "bookings_no_overlap"})

	_, err := repo.Create(context.Background(), draft())

	assert.ErrorIs(t, err, ErrDateRangeConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OtherErrorKeepsCause(t *testing.T) {
	repo, mock := newRepo(t)
	cause := &pq.Error{Code: "40001"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnError(cause)

	_, err := repo.Create(context.Background(), draft())

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorIs(t, err, cause)
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1$`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(42, "confirmed")...))

		b, err := repo.GetByID(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), b.ID)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		assert.Equal(t, "2025-01-10", b.Range.Start.String())
		assert.Equal(t, "2025-01-13", b.Range.End.String())
		assert.Equal(t, types.Cents(7500), b.TotalPrice)
		assert.Nil(t, b.Notes)
		assert.Nil(t, b.CancelledAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.GetByID(context.Background(), 7)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		wrapped := dbmetrics.New(db)
		repo := NewRepository(wrapped)

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM bookings WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(42, "pending")...))

		tx, err := wrapped.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 42)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByOwnerWithFilter(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE owner_id = $1 AND item_id = $2 AND status NOT IN ($3,$4) ORDER BY start_date ASC, id ASC")).
		WithArgs(int64(20), int64(3), "completed", "cancelled").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(bookingRow(1, "pending")...).
			AddRow(bookingRow(2, "active")...))

	result, err := repo.GetByOwnerWithFilter(context.Background(), domain.OwnerBookingsFilter{
		OwnerID: 20,
		ItemID:  ptr.Ptr(int64(3)),
	})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, domain.StatusActive, result[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByRenterID_WithStatus(t *testing.T) {
	repo, mock := newRepo(t)
	status := domain.StatusCompleted

	mock.ExpectQuery(regexp.QuoteMeta("WHERE renter_id = $1 AND status = $2 ORDER BY start_date DESC, id DESC")).
		WithArgs(int64(10), "completed").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	result, err := repo.GetByRenterID(context.Background(), 10, &status)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
			WithArgs("confirmed", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), 42, domain.StatusConfirmed))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 42, domain.StatusConfirmed), ErrBookingNotFound)
	})

	t.Run("dispute keeps previous status", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, disputed_from = status, updated_at = NOW() WHERE id = $2")).
			WithArgs("disputed", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), 42, domain.StatusDisputed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID_DisputedFrom(t *testing.T) {
	repo, mock := newRepo(t)
	row := bookingRow(42, "disputed")
	row[15] = "cancelled"

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1$`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(row...))

	b, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, b.DisputedFrom)
	assert.Equal(t, domain.StatusCancelled, *b.DisputedFrom)
	assert.False(t, b.IsOccupying())
}

func TestRepository_Cancel(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3")).
		WithArgs("cancelled", "changed plans", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 42, "changed plans"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReleaseDeposit(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET deposit_released = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(true, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ReleaseDeposit(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExpirePending(t *testing.T) {
	repo, mock := newRepo(t)
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE status = $3 AND created_at < $4 RETURNING id")).
		WithArgs("cancelled", domain.ReasonPendingExpired, "pending", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)).AddRow(int64(9)))

	ids, err := repo.ExpirePending(context.Background(), cutoff, domain.ReasonPendingExpired)

	require.NoError(t, err)
	assert.Equal(t, []int64{5, 9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
