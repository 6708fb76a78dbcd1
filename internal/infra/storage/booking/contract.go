package booking

import (
	"github.com/m04kA/RMT-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// pqExclusionViolation код ошибки PostgreSQL при нарушении EXCLUDE constraint
const pqExclusionViolation = "23P01"

// bookingColumns колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"item_id",
	"renter_id",
	"owner_id",
	"start_date",
	"end_date",
	"total_days",
	"total_price_cents",
	"deposit_cents",
	"status",
	"pickup_method",
	"notes",
	"deposit_released",
	"cancellation_reason",
	"cancelled_at",
	"disputed_from",
	"created_at",
	"updated_at",
}
