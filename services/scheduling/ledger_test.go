package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"lumiere/models"
)

func seedBooking(t *testing.T, repo *memBookingRepo, id, date string, status models.BookingStatus) {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		t.Fatalf("bad date %s: %v", date, err)
	}
	b := models.Booking{
		ID:       id,
		DateTime: day.Add(10 * time.Hour),
		Date:     date,
		Status:   status,
	}
	if err := repo.Insert(context.Background(), &b); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}
}

func TestLedgerLoadsFromStorage(t *testing.T) {
	repo := newMemBookingRepo()
	seedBooking(t, repo, "b1", "2026-04-10", models.BookingUpcoming)
	seedBooking(t, repo, "b2", "2026-04-10", models.BookingCompleted)
	seedBooking(t, repo, "b3", "2026-04-10", models.BookingCancelled)
	seedBooking(t, repo, "b4", "2026-04-11", models.BookingUpcoming)

	ledger := NewCapacityLedger(repo)
	count, err := ledger.CountOnDay(context.Background(), "2026-04-10")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("cancelled bookings must not count, got %d want 2", count)
	}
}

func TestLedgerReserveEnforcesCap(t *testing.T) {
	ledger := NewCapacityLedger(newMemBookingRepo())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := ledger.Reserve(ctx, "2026-04-10", 2); err != nil {
			t.Fatalf("reserve %d failed: %v", i, err)
		}
	}
	err := ledger.Reserve(ctx, "2026-04-10", 2)
	requireEngineError(t, err, CodeCapacityExceeded)

	// A different day carries its own count.
	if err := ledger.Reserve(ctx, "2026-04-11", 2); err != nil {
		t.Fatalf("reserve on another day failed: %v", err)
	}
}

func TestLedgerReleaseFreesOneUnit(t *testing.T) {
	ledger := NewCapacityLedger(newMemBookingRepo())
	ctx := context.Background()

	if err := ledger.Reserve(ctx, "2026-04-10", 1); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	requireEngineError(t, ledger.Reserve(ctx, "2026-04-10", 1), CodeCapacityExceeded)

	ledger.Release("2026-04-10")
	if err := ledger.Reserve(ctx, "2026-04-10", 1); err != nil {
		t.Fatalf("reserve after release failed: %v", err)
	}
}

func TestLedgerInvalidateForcesRecompute(t *testing.T) {
	repo := newMemBookingRepo()
	ledger := NewCapacityLedger(repo)
	ctx := context.Background()

	if err := ledger.Reserve(ctx, "2026-04-10", 5); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	// Storage changed behind the cache; Invalidate picks it up.
	seedBooking(t, repo, "ext1", "2026-04-10", models.BookingUpcoming)
	seedBooking(t, repo, "ext2", "2026-04-10", models.BookingUpcoming)
	ledger.Invalidate("2026-04-10")

	count, err := ledger.CountOnDay(ctx, "2026-04-10")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected recomputed count 2, got %d", count)
	}
}

func TestLedgerConcurrentReserve(t *testing.T) {
	ledger := NewCapacityLedger(newMemBookingRepo())
	ctx := context.Background()

	const attempts = 50
	const max = 7
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ledger.Reserve(ctx, "2026-04-10", max); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != max {
		t.Fatalf("expected exactly %d reservations, got %d", max, succeeded)
	}
	count, _ := ledger.CountOnDay(ctx, "2026-04-10")
	if count != max {
		t.Fatalf("expected count %d, got %d", max, count)
	}
}
