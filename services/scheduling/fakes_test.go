package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "lumiere/database/repository/booking"
	staffRepo "lumiere/database/repository/staff"
	"lumiere/models"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// staticPolicy returns a fixed config.
type staticPolicy struct {
	cfg models.BookingConfig
}

func (p *staticPolicy) Get() models.BookingConfig { return p.cfg }

// memBookingRepo is an in-memory booking repository.
type memBookingRepo struct {
	mu        sync.Mutex
	items     map[string]models.Booking
	insertErr error // injected failure for the next Insert call
	updateErr error // injected failure for the next Update call
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{items: make(map[string]models.Booking)}
}

func (r *memBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		err := r.insertErr
		r.insertErr = nil
		return err
	}
	if _, exists := r.items[b.ID]; exists {
		return fmt.Errorf("duplicate booking id %s", b.ID)
	}
	r.items[b.ID] = *b
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := b
	return &copied, nil
}

func (r *memBookingRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		err := r.updateErr
		r.updateErr = nil
		return err
	}
	if _, ok := r.items[b.ID]; !ok {
		return bookingRepo.ErrNotFound
	}
	r.items[b.ID] = *b
	return nil
}

func (r *memBookingRepo) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.items {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) CountActiveOnDay(_ context.Context, date string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, b := range r.items {
		if b.Date == date && b.Status != models.BookingCancelled {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) ListUnassignedUpcoming(_ context.Context, fromDate, toDate string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.items {
		if b.Status == models.BookingUpcoming && b.AssignedStaffID == "" &&
			b.Date >= fromDate && b.Date <= toDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) SetAssignedStaff(_ context.Context, bookingID, staffID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.AssignedStaffID = staffID
	r.items[bookingID] = b
	return nil
}

// memStaffRepo is an in-memory staff repository.
type memStaffRepo struct {
	mu        sync.Mutex
	items     map[string]models.Staff
	assignErr error // injected failure for the next SetAssignedBooking call
}

func newMemStaffRepo() *memStaffRepo {
	return &memStaffRepo{items: make(map[string]models.Staff)}
}

func (r *memStaffRepo) Insert(_ context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = *s
	return nil
}

func (r *memStaffRepo) GetByID(_ context.Context, id string) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, staffRepo.ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (r *memStaffRepo) SetAssignedBooking(_ context.Context, staffID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.assignErr != nil {
		err := r.assignErr
		r.assignErr = nil
		return err
	}
	s, ok := r.items[staffID]
	if !ok {
		return staffRepo.ErrNotFound
	}
	s.AssignedBookingID = bookingID
	r.items[staffID] = s
	return nil
}

// newTestEngine wires an engine over in-memory repositories and a fake
// clock pinned to a known instant.
func newTestEngine(cfg models.BookingConfig) (*DefaultSchedulingEngine, *memBookingRepo, *memStaffRepo, *fakeClock) {
	bookings := newMemBookingRepo()
	staff := newMemStaffRepo()
	clock := &fakeClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}
	engine := &DefaultSchedulingEngine{
		Bookings: bookings,
		Staff:    staff,
		Policy:   &staticPolicy{cfg: cfg},
		Ledger:   NewCapacityLedger(bookings),
		Clock:    clock,
	}
	return engine, bookings, staff, clock
}

func testConfig() models.BookingConfig {
	return models.BookingConfig{
		MaxBookingsPerDay:       5,
		MinAdvanceBookingDays:   1,
		MaxAdvanceBookingDays:   30,
		CancellationWindowHours: 24,
		RescheduleWindowHours:   24,
	}
}

func validInput(dateTime time.Time) models.CreateBookingInput {
	return models.CreateBookingInput{
		DateTime:    dateTime,
		ClientID:    "client-1",
		Email:       "client@example.com",
		Phone:       "+77010000000",
		PackageID:   "pkg-portrait",
		PackageName: "Portrait Session",
		Location:    "Studio A",
	}
}
