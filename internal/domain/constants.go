package domain

import "github.com/m04kA/RMT-BookingService/pkg/types"

// Date format constants
const (
	DateFormat = types.DateLayout // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockNoteLength          = 255
	DefaultPendingTTLHours      = 48
)

// Cancellation reasons set by the system
const (
	ReasonPendingExpired = "pending booking expired without confirmation"
)

// OccupyingStatuses статусы, в которых бронирование занимает даты вещи.
// disputed занимает даты до разрешения спора, если DisputedFrom входит в этот список.
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusActive,
}

// InactiveStatuses статусы, в которых даты освобождены
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// StatusStrings переводит статусы в строки для SQL-фильтров
func StatusStrings(statuses []BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
