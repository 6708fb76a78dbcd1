package quote

import "github.com/m04kA/RMT-BookingService/internal/domain"

// findConflict ищет окно вещи, пересекающееся с запрошенным периодом.
// Из нескольких пересечений возвращается самое раннее, чтобы ответ не зависел от порядка окон.
// Окна других вещей игнорируются.
func findConflict(itemID int64, requested domain.DateRange, windows []domain.UnavailabilityWindow) (domain.UnavailabilityWindow, bool) {
	var (
		earliest domain.UnavailabilityWindow
		found    bool
	)

	for _, w := range windows {
		if w.ItemID != 0 && w.ItemID != itemID {
			continue
		}
		if !requested.Overlaps(w.Range) {
			continue
		}
		if !found || isEarlier(w, earliest) {
			earliest = w
			found = true
		}
	}

	return earliest, found
}

// FindConflict возвращает самое раннее окно вещи, пересекающееся с периодом
func FindConflict(itemID int64, requested domain.DateRange, windows []domain.UnavailabilityWindow) (*ConflictError, bool) {
	conflict, found := findConflict(itemID, requested, windows)
	if !found {
		return nil, false
	}
	return &ConflictError{Window: conflict}, true
}

func isEarlier(a, b domain.UnavailabilityWindow) bool {
	if !a.Range.Start.Equal(b.Range.Start) {
		return a.Range.Start.Before(b.Range.Start)
	}
	return a.Range.End.Before(b.Range.End)
}
