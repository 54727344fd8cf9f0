package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingRepo "lumiere/database/repository/booking"
	staffRepo "lumiere/database/repository/staff"
	"lumiere/models"
	"lumiere/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSchedulingEngine is the production implementation of Service
// and Matcher. Per-day capacity is serialized through the ledger; the
// engine mutex serializes every booking state transition plus the
// cross-aggregate staff pointer updates, so a transition can never be
// overwritten by a concurrent read-modify-write on the same booking.
// Reads (Get, ListByDate, AvailableSlots) stay outside the lock.
type DefaultSchedulingEngine struct {
	Bookings  bookingRepo.Repository
	Staff     staffRepo.Repository
	Policy    PolicyProvider
	Ledger    *CapacityLedger
	Clock     Clock
	Cache     *redis.Client      // optional slot-list cache
	Metrics   *utils.Metrics     // optional
	Reminders ReminderScheduler  // optional
	Logger    *zap.Logger

	// Studio working window, minutes from midnight. Zero values fall
	// back to 09:00-18:00.
	OpenMinute  int
	CloseMinute int

	mu sync.Mutex
}

// CreateBooking validates and creates a new Upcoming booking. Cheap
// field and window checks run before the stateful capacity reservation
// to minimize wasted contention on the ledger.
func (se *DefaultSchedulingEngine) CreateBooking(ctx context.Context, in models.CreateBookingInput) (*models.Booking, error) {
	if field, ok := firstMissingField(in); !ok {
		return nil, newMissingField(field)
	}

	cfg := se.Policy.Get()
	now := se.Clock.Now()
	if err := checkAdvanceWindow(in.DateTime, now, cfg); err != nil {
		se.countPolicyViolation(CodeOutOfAdvanceWindow)
		return nil, err
	}

	date := models.DateKey(in.DateTime)
	if err := se.Ledger.Reserve(ctx, date, cfg.MaxBookingsPerDay); err != nil {
		if e, ok := AsEngineError(err); ok && e.Code == CodeCapacityExceeded {
			se.countCapacityRejection()
			return nil, err
		}
		return nil, newInternalError(err)
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		DateTime:      in.DateTime,
		Date:          date,
		ClientID:      in.ClientID,
		Email:         in.Email,
		Phone:         in.Phone,
		PackageID:     in.PackageID,
		PackageName:   in.PackageName,
		Location:      in.Location,
		Status:        models.BookingUpcoming,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := se.Bookings.Insert(ctx, booking); err != nil {
		// After a failed write the cached count is suspect; recompute
		// from storage instead of adjusting it.
		se.Ledger.Invalidate(date)
		return nil, newInternalError(fmt.Errorf("failed to persist booking: %w", err))
	}

	se.invalidateSlotCache(ctx, date)
	if se.Metrics != nil {
		se.Metrics.BookingsCreated.Inc()
	}
	if se.Reminders != nil {
		if err := se.Reminders.ScheduleSessionReminder(*booking); err != nil {
			se.logger().Warn("failed to schedule session reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

// RescheduleBooking moves an Upcoming booking to a new instant. On a
// cross-day move the target day is reserved before the original day is
// released, so a failed move leaves the original reservation intact.
func (se *DefaultSchedulingEngine) RescheduleBooking(ctx context.Context, bookingID string, newDateTime time.Time) (*models.Booking, error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	booking, err := se.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingUpcoming {
		return nil, newInvalidStateTransition(string(booking.Status), "reschedule")
	}

	cfg := se.Policy.Get()
	now := se.Clock.Now()
	if booking.DateTime.Sub(now) < time.Duration(cfg.RescheduleWindowHours)*time.Hour {
		se.countPolicyViolation(CodeReschedulingWindowViolation)
		return nil, newReschedulingWindowViolation(cfg.RescheduleWindowHours)
	}
	if err := checkAdvanceWindow(newDateTime, now, cfg); err != nil {
		se.countPolicyViolation(CodeOutOfAdvanceWindow)
		return nil, err
	}

	oldDate := booking.Date
	newDate := models.DateKey(newDateTime)

	if newDate != oldDate {
		// Reserve-before-release: the booking must never lose its old
		// slot before the new one is held.
		if err := se.Ledger.Reserve(ctx, newDate, cfg.MaxBookingsPerDay); err != nil {
			if e, ok := AsEngineError(err); ok && e.Code == CodeCapacityExceeded {
				se.countCapacityRejection()
				return nil, err
			}
			return nil, newInternalError(err)
		}
	}

	prevDateTime := booking.DateTime
	booking.DateTime = newDateTime
	booking.Date = newDate
	booking.UpdatedAt = now
	if err := se.Bookings.Update(ctx, booking); err != nil {
		if newDate != oldDate {
			// Failed write, cached target count is suspect; recompute
			// from storage instead of adjusting it.
			se.Ledger.Invalidate(newDate)
		}
		booking.DateTime = prevDateTime
		booking.Date = oldDate
		return nil, newInternalError(fmt.Errorf("failed to persist reschedule: %w", err))
	}
	if newDate != oldDate {
		se.Ledger.Release(oldDate)
		se.invalidateSlotCache(ctx, oldDate)
	}

	se.invalidateSlotCache(ctx, newDate)
	if se.Metrics != nil {
		se.Metrics.BookingsRescheduled.Inc()
	}
	return booking, nil
}

// CancelBooking cancels an Upcoming booking, releases its day capacity,
// and clears any staff assignment. The booking side of the pointer pair
// is written first; a staff-side failure rolls the booking back so the
// pair never ends up inconsistent.
func (se *DefaultSchedulingEngine) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	booking, err := se.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingUpcoming {
		return nil, newInvalidStateTransition(string(booking.Status), "cancel")
	}

	cfg := se.Policy.Get()
	now := se.Clock.Now()
	if booking.DateTime.Sub(now) < time.Duration(cfg.CancellationWindowHours)*time.Hour {
		se.countPolicyViolation(CodeCancellationWindowViolation)
		return nil, newCancellationWindowViolation(cfg.CancellationWindowHours)
	}

	assignedStaffID := booking.AssignedStaffID
	booking.Status = models.BookingCancelled
	booking.AssignedStaffID = ""
	booking.UpdatedAt = now
	if err := se.Bookings.Update(ctx, booking); err != nil {
		booking.Status = models.BookingUpcoming
		booking.AssignedStaffID = assignedStaffID
		return nil, newInternalError(fmt.Errorf("failed to persist cancellation: %w", err))
	}

	if assignedStaffID != "" {
		if err := se.Staff.SetAssignedBooking(ctx, assignedStaffID, ""); err != nil {
			// Compensate: restore the booking side rather than leave the
			// pointer pair inconsistent.
			booking.Status = models.BookingUpcoming
			booking.AssignedStaffID = assignedStaffID
			if rbErr := se.Bookings.Update(ctx, booking); rbErr != nil {
				se.logger().Error("failed to roll back cancellation after staff-side failure",
					zap.String("bookingId", booking.ID), zap.Error(rbErr))
			}
			return nil, newInternalError(fmt.Errorf("failed to clear staff assignment: %w", err))
		}
	}

	se.Ledger.Release(booking.Date)
	se.invalidateSlotCache(ctx, booking.Date)
	if se.Metrics != nil {
		se.Metrics.BookingsCancelled.Inc()
	}
	return booking, nil
}

// MarkCompleted is the administrative transition out of Upcoming. The
// day's capacity stays consumed; only cancellation releases it.
func (se *DefaultSchedulingEngine) MarkCompleted(ctx context.Context, bookingID string) (*models.Booking, error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	booking, err := se.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingUpcoming {
		return nil, newInvalidStateTransition(string(booking.Status), "complete")
	}

	booking.Status = models.BookingCompleted
	booking.UpdatedAt = se.Clock.Now()
	if err := se.Bookings.Update(ctx, booking); err != nil {
		return nil, newInternalError(fmt.Errorf("failed to persist completion: %w", err))
	}
	return booking, nil
}

// UpdatePaymentStatus applies one of the allowed payment transitions:
// Pending->Paid, Paid->Refunded, Pending->Refunded. Everything else,
// including un-paying, is rejected.
func (se *DefaultSchedulingEngine) UpdatePaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) (*models.Booking, error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	booking, err := se.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !paymentTransitionAllowed(booking.PaymentStatus, status) {
		return nil, newInvalidPaymentTransition(string(booking.PaymentStatus), string(status))
	}

	booking.PaymentStatus = status
	booking.UpdatedAt = se.Clock.Now()
	if err := se.Bookings.Update(ctx, booking); err != nil {
		return nil, newInternalError(fmt.Errorf("failed to persist payment status: %w", err))
	}
	return booking, nil
}

// GetBooking fetches a single booking by id.
func (se *DefaultSchedulingEngine) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return se.loadBooking(ctx, bookingID)
}

// ListBookingsByDate returns every booking on the given day.
func (se *DefaultSchedulingEngine) ListBookingsByDate(ctx context.Context, date string) ([]models.Booking, error) {
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return nil, newMalformedField("date", "expected YYYY-MM-DD")
	}
	bookings, err := se.Bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, newInternalError(err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (se *DefaultSchedulingEngine) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := se.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFound("booking", bookingID)
		}
		return nil, newInternalError(err)
	}
	return booking, nil
}

func (se *DefaultSchedulingEngine) logger() *zap.Logger {
	if se.Logger != nil {
		return se.Logger
	}
	return zap.L()
}

func (se *DefaultSchedulingEngine) countPolicyViolation(rule string) {
	if se.Metrics != nil {
		se.Metrics.PolicyViolations.WithLabelValues(rule).Inc()
	}
}

func (se *DefaultSchedulingEngine) countCapacityRejection() {
	if se.Metrics != nil {
		se.Metrics.CapacityRejections.Inc()
	}
}

// firstMissingField returns the first absent required field, in the
// order the rules are documented.
func firstMissingField(in models.CreateBookingInput) (string, bool) {
	switch {
	case in.DateTime.IsZero():
		return "dateTime", false
	case in.ClientID == "":
		return "clientId", false
	case in.Email == "":
		return "email", false
	case in.Phone == "":
		return "phone", false
	case in.PackageID == "":
		return "packageId", false
	}
	return "", true
}

// checkAdvanceWindow enforces minAdvance <= (dateTime - now) <=
// maxAdvance, boundaries inclusive.
func checkAdvanceWindow(dateTime, now time.Time, cfg models.BookingConfig) error {
	lead := dateTime.Sub(now)
	minLead := time.Duration(cfg.MinAdvanceBookingDays) * 24 * time.Hour
	maxLead := time.Duration(cfg.MaxAdvanceBookingDays) * 24 * time.Hour
	if lead < minLead {
		return newOutOfAdvanceWindow(cfg.MinAdvanceBookingDays, cfg.MaxAdvanceBookingDays, cfg.MinAdvanceBookingDays)
	}
	if lead > maxLead {
		return newOutOfAdvanceWindow(cfg.MinAdvanceBookingDays, cfg.MaxAdvanceBookingDays, cfg.MaxAdvanceBookingDays)
	}
	return nil
}

func paymentTransitionAllowed(from, to models.PaymentStatus) bool {
	switch from {
	case models.PaymentPending:
		return to == models.PaymentPaid || to == models.PaymentRefunded
	case models.PaymentPaid:
		return to == models.PaymentRefunded
	default:
		return false
	}
}
