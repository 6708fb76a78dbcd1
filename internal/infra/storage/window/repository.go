package window

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RMT-BookingService/pkg/psqlbuilder"
)

// Repository окна недоступности вещей: занимающие бронирования и блокировки владельца
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveWindows возвращает все окна недоступности вещи, отсортированные по дате начала:
// бронирования в занимающих статусах и блокировки владельца.
//
// Внутри транзакции строки бронирований блокируются (FOR UPDATE), чтобы параллельное
// создание бронирования на ту же вещь дождалось завершения текущей транзакции.
func (r *Repository) GetActiveWindows(ctx context.Context, itemID int64) ([]domain.UnavailabilityWindow, error) {
	bookingWindows, err := r.getBookingWindows(ctx, itemID)
	if err != nil {
		return nil, err
	}

	blocks, err := r.GetBlocksByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	windows := make([]domain.UnavailabilityWindow, 0, len(bookingWindows)+len(blocks))
	windows = append(windows, bookingWindows...)
	for _, block := range blocks {
		windows = append(windows, block.Window())
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Range.Start.Before(windows[j].Range.Start)
	})

	return windows, nil
}

func (r *Repository) getBookingWindows(ctx context.Context, itemID int64) ([]domain.UnavailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "start_date", "end_date").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(occupyingPredicate()).
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBookingWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBookingWindows - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.UnavailabilityWindow, 0)
	for rows.Next() {
		var bookingID int64
		w := domain.UnavailabilityWindow{ItemID: itemID, Reason: domain.WindowReasonBooked}
		if err := rows.Scan(&bookingID, &w.Range.Start, &w.Range.End); err != nil {
			return nil, fmt.Errorf("%w: getBookingWindows - scan row: %v", ErrScanRow, err)
		}
		w.BookingID = &bookingID
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBookingWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// CreateBlock создает блокировку дат владельцем
func (r *Repository) CreateBlock(ctx context.Context, block *domain.OwnerBlock) (*domain.OwnerBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("owner_blocks").
		Columns("item_id", "owner_id", "start_date", "end_date", "reason", "note").
		Values(block.ItemID, block.OwnerID, block.Range.Start, block.Range.End, block.Reason, block.Note).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: CreateBlock - item_id=%d, range=%s", ErrDateRangeConflict, block.ItemID, block.Range)
		}
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %w", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetBlockByID получает блокировку по ID
func (r *Repository) GetBlockByID(ctx context.Context, id int64) (*domain.OwnerBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("owner_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockByID - scan block: %v", ErrScanRow, err)
	}

	return block, nil
}

// GetBlocksByItem получает все блокировки вещи
func (r *Repository) GetBlocksByItem(ctx context.Context, itemID int64) ([]*domain.OwnerBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("owner_blocks").
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByItem - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByItem - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.OwnerBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBlocksByItem - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByItem - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteBlock удаляет блокировку
func (r *Repository) DeleteBlock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("owner_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// occupyingPredicate условие занятости дат, совпадает с WHERE у bookings_no_overlap
func occupyingPredicate() squirrel.Sqlizer {
	occupying := domain.StatusStrings(domain.OccupyingStatuses)
	return squirrel.Or{
		squirrel.Eq{"status": occupying},
		squirrel.And{
			squirrel.Eq{"status": domain.StatusDisputed},
			squirrel.Eq{"disputed_from": occupying},
		},
	}
}

var blockColumns = []string{"id", "item_id", "owner_id", "start_date", "end_date", "reason", "note", "created_at"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.OwnerBlock, error) {
	var block domain.OwnerBlock
	var createdAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.ItemID,
		&block.OwnerID,
		&block.Range.Start,
		&block.Range.End,
		&block.Reason,
		&block.Note,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	block.CreatedAt = createdAt.Time

	return &block, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}
