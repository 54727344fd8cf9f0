package bookingRepo

import (
	"context"

	"lumiere/models"
)

// Repository defines persistence for the Booking aggregate. Bookings are
// keyed by id with a secondary index on the date field for day-count and
// slot queries.
type Repository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	// ListByDate returns all bookings on the given "YYYY-MM-DD" day,
	// regardless of status.
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	// CountActiveOnDay counts non-Cancelled bookings on the given day.
	CountActiveOnDay(ctx context.Context, date string) (int, error)
	// ListUnassignedUpcoming returns Upcoming bookings with no assigned
	// staff whose date falls in [fromDate, toDate] inclusive.
	ListUnassignedUpcoming(ctx context.Context, fromDate, toDate string) ([]models.Booking, error)
	// SetAssignedStaff sets or clears (staffID == "") the booking side of
	// the staff pointer pair.
	SetAssignedStaff(ctx context.Context, bookingID, staffID string) error
}
