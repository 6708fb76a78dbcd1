package window

import "github.com/m04kA/RMT-BookingService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// pqExclusionViolation код ошибки PostgreSQL при нарушении EXCLUDE constraint
const pqExclusionViolation = "23P01"
