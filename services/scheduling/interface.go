package scheduling

import (
	"context"
	"time"

	"lumiere/models"
)

// Service defines the booking lifecycle and slot query operations.
type Service interface {
	CreateBooking(ctx context.Context, in models.CreateBookingInput) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, bookingID string, newDateTime time.Time) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	MarkCompleted(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookingsByDate(ctx context.Context, date string) ([]models.Booking, error)
	AvailableSlots(ctx context.Context, date string) ([]time.Time, error)
}

// Matcher defines staff availability matching and assignment.
type Matcher interface {
	RegisterStaff(ctx context.Context, in models.StaffInput) (*models.Staff, error)
	EligibleBookings(ctx context.Context, staffID string) ([]models.Booking, error)
	Assign(ctx context.Context, staffID, bookingID string) (*models.Staff, *models.Booking, error)
}

// PolicyProvider supplies the current booking policy. Each engine call
// reads the current value, so admin updates take effect immediately.
type PolicyProvider interface {
	Get() models.BookingConfig
}

// ReminderScheduler enqueues a session reminder for a newly created
// booking. Enqueueing happens outside the engine's locked region and a
// failure never fails the booking.
type ReminderScheduler interface {
	ScheduleSessionReminder(booking models.Booking) error
}
