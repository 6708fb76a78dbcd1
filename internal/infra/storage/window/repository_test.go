package window

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RMT-BookingService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.New(db)), mock
}

func day(s string) time.Time {
	return types.MustParseDate(s).Time()
}

func TestRepository_GetActiveWindows(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, start_date, end_date FROM bookings WHERE item_id = $1 AND (status IN ($2,$3,$4) OR (status = $5 AND disputed_from IN ($6,$7,$8))) ORDER BY start_date ASC")).
		WithArgs(int64(3), "pending", "confirmed", "active", "disputed", "pending", "confirmed", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date"}).
			AddRow(int64(11), day("2025-02-10"), day("2025-02-12")))

	mock.ExpectQuery(regexp.QuoteMeta("FROM owner_blocks WHERE item_id = $1 ORDER BY start_date ASC")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(blockColumns).
			AddRow(int64(5), int64(3), int64(20), day("2025-01-20"), day("2025-01-25"), "maintenance", nil, time.Now()))

	windows, err := repo.GetActiveWindows(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, domain.WindowReasonMaintenance, windows[0].Reason)
	require.NotNil(t, windows[0].BlockID)
	assert.Equal(t, int64(5), *windows[0].BlockID)

	assert.Equal(t, domain.WindowReasonBooked, windows[1].Reason)
	require.NotNil(t, windows[1].BookingID)
	assert.Equal(t, int64(11), *windows[1].BookingID)
	assert.Equal(t, "[2025-02-10, 2025-02-12)", windows[1].Range.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveWindows_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.New(db)
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date"}))
	mock.ExpectQuery(`FROM owner_blocks (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(blockColumns))

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	windows, err := repo.GetActiveWindows(dbmetrics.WithTx(context.Background(), tx), 3)

	require.NoError(t, err)
	assert.Empty(t, windows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBlock(t *testing.T) {
	repo, mock := newRepo(t)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO owner_blocks (item_id,owner_id,start_date,end_date,reason,note) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at")).
		WithArgs(int64(3), int64(20), "2025-03-01", "2025-03-05", "owner_blocked", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), created))

	block, err := repo.CreateBlock(context.Background(), &domain.OwnerBlock{
		ItemID:  3,
		OwnerID: 20,
		Range:   domain.NewDateRange(types.MustParseDate("2025-03-01"), types.MustParseDate("2025-03-05")),
		Reason:  domain.WindowReasonOwnerBlocked,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), block.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBlockByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM owner_blocks").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(blockColumns))

	_, err := repo.GetBlockByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestRepository_DeleteBlock(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM owner_blocks WHERE id = $1")).
			WithArgs(int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteBlock(context.Background(), 8))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("DELETE FROM owner_blocks").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteBlock(context.Background(), 8), ErrBlockNotFound)
	})
}

func TestRepository_CreateBlock_ExclusionViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO owner_blocks")).
		WillReturnError(&pq.Error{Code: pqExclusionViolation, Constraint: "owner_blocks_no_overlap"})

	_, err := repo.CreateBlock(context.Background(), &domain.OwnerBlock{
		ItemID:  3,
		OwnerID: 20,
		Range:   domain.NewDateRange(types.MustParseDate("2025-03-01"), types.MustParseDate("2025-03-05")),
		Reason:  domain.WindowReasonMaintenance,
	})

	assert.ErrorIs(t, err, ErrDateRangeConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
