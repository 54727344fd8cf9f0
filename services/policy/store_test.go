package policy

import (
	"context"
	"errors"
	"sync"
	"testing"

	policyRepo "lumiere/database/repository/policy"
	"lumiere/models"
)

// memPolicyRepo is an in-memory singleton policy record.
type memPolicyRepo struct {
	mu  sync.Mutex
	cfg *models.BookingConfig
}

func (r *memPolicyRepo) Get(_ context.Context) (*models.BookingConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return nil, policyRepo.ErrNotFound
	}
	copied := *r.cfg
	return &copied, nil
}

func (r *memPolicyRepo) Upsert(_ context.Context, cfg *models.BookingConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cfg
	r.cfg = &copied
	return nil
}

func defaults() models.BookingConfig {
	return models.BookingConfig{
		MaxBookingsPerDay:       5,
		MinAdvanceBookingDays:   1,
		MaxAdvanceBookingDays:   60,
		CancellationWindowHours: 24,
		RescheduleWindowHours:   24,
	}
}

func TestNewStoreSeedsDefaults(t *testing.T) {
	repo := &memPolicyRepo{}
	store, err := NewStore(context.Background(), repo, defaults())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	if got := store.Get(); got != defaults() {
		t.Fatalf("expected seeded defaults, got %+v", got)
	}
	persisted, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("defaults were not persisted: %v", err)
	}
	if *persisted != defaults() {
		t.Fatalf("persisted config %+v differs from defaults", *persisted)
	}
}

func TestNewStoreLoadsExistingRecord(t *testing.T) {
	existing := defaults()
	existing.MaxBookingsPerDay = 9
	repo := &memPolicyRepo{}
	if err := repo.Upsert(context.Background(), &existing); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store, err := NewStore(context.Background(), repo, defaults())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if got := store.Get(); got.MaxBookingsPerDay != 9 {
		t.Fatalf("expected persisted record to win over defaults, got %+v", got)
	}
}

func TestSetAppliesImmediately(t *testing.T) {
	store, err := NewStore(context.Background(), &memPolicyRepo{}, defaults())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	next := defaults()
	next.MaxBookingsPerDay = 3
	next.CancellationWindowHours = 48
	updated, err := store.Set(context.Background(), next)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if updated != next {
		t.Fatalf("set returned %+v, want %+v", updated, next)
	}
	if got := store.Get(); got != next {
		t.Fatalf("get after set returned %+v, want %+v", got, next)
	}
}

func TestSetRejectsInvalidConfig(t *testing.T) {
	store, err := NewStore(context.Background(), &memPolicyRepo{}, defaults())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.BookingConfig)
		field  string
	}{
		{"zero daily cap", func(c *models.BookingConfig) { c.MaxBookingsPerDay = 0 }, "MaxBookingsPerDay"},
		{"negative min advance", func(c *models.BookingConfig) { c.MinAdvanceBookingDays = -1 }, "MinAdvanceBookingDays"},
		{"negative cancel window", func(c *models.BookingConfig) { c.CancellationWindowHours = -5 }, "CancellationWindowHours"},
		{"negative reschedule window", func(c *models.BookingConfig) { c.RescheduleWindowHours = -1 }, "RescheduleWindowHours"},
		{"max advance below min", func(c *models.BookingConfig) {
			c.MinAdvanceBookingDays = 10
			c.MaxAdvanceBookingDays = 5
		}, "MaxAdvanceBookingDays"},
	}

	before := store.Get()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(&cfg)
			_, err := store.Set(context.Background(), cfg)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected offending field %s, got %s", tc.field, verr.Field)
			}
			if store.Get() != before {
				t.Error("rejected update must not change the current policy")
			}
		})
	}
}
