package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	"github.com/m04kA/RMT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RMT-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий вещей (только чтение: каталогом управляет другой сервис)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вещей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает вещь по ID.
// Внутри транзакции строка блокируется (FOR SHARE), чтобы владелец не снял вещь с аренды
// одновременно с созданием бронирования.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"owner_id",
		"title",
		"category",
		"size",
		"condition",
		"price_per_day_cents",
		"deposit_cents",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("items").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var item domain.Item
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Title,
		&item.Category,
		&item.Size,
		&item.Condition,
		&item.PricePerDay,
		&item.DepositAmount,
		&item.IsAvailable,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan item: %w", ErrScanRow, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}
