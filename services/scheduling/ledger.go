package scheduling

import (
	"context"
	"fmt"

	bookingRepo "lumiere/database/repository/booking"

	"sync"
)

// CapacityLedger tracks confirmed bookings per calendar day and enforces
// the daily cap. Counts are a cache over the booking collection: a
// missing entry is recomputed from the set of non-Cancelled bookings, so
// the ledger survives restarts without drifting from storage.
//
// Reserve and Release are mutually exclusive across callers; a single
// lock over all dates keeps the check-and-increment atomic, which is
// what prevents two concurrent requests from both taking the last slot
// on a day.
type CapacityLedger struct {
	mu       sync.Mutex
	counts   map[string]int
	bookings bookingRepo.Repository
}

func NewCapacityLedger(bookings bookingRepo.Repository) *CapacityLedger {
	return &CapacityLedger{
		counts:   make(map[string]int),
		bookings: bookings,
	}
}

// CountOnDay returns the number of non-Cancelled bookings on the day.
func (l *CapacityLedger) CountOnDay(ctx context.Context, date string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(ctx, date)
}

// Reserve takes one capacity unit on the day, failing when the day
// already holds max bookings. The caller must Release on any later
// failure of its own (reserve-then-persist-or-rollback ordering).
func (l *CapacityLedger) Reserve(ctx context.Context, date string, max int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	count, err := l.loadLocked(ctx, date)
	if err != nil {
		return err
	}
	if count >= max {
		return newCapacityExceeded(date, max)
	}
	l.counts[date] = count + 1
	return nil
}

// Release returns one capacity unit on the day. When the day is not
// cached the entry is simply left to be recomputed on next access,
// which already reflects the released booking.
func (l *CapacityLedger) Release(date string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if count, ok := l.counts[date]; ok {
		if count > 0 {
			l.counts[date] = count - 1
		} else {
			delete(l.counts, date)
		}
	}
}

// Invalidate drops the cached count for the day, forcing a recompute.
func (l *CapacityLedger) Invalidate(date string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, date)
}

func (l *CapacityLedger) loadLocked(ctx context.Context, date string) (int, error) {
	if count, ok := l.counts[date]; ok {
		return count, nil
	}
	count, err := l.bookings.CountActiveOnDay(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to load day count for %s: %w", date, err)
	}
	l.counts[date] = count
	return count, nil
}
