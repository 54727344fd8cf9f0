package staffRepo

import (
	"context"

	"lumiere/models"
)

// Repository defines persistence for the Staff aggregate.
type Repository interface {
	Insert(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, staffID string) (*models.Staff, error)
	// SetAssignedBooking sets or clears (bookingID == "") the staff side
	// of the booking pointer pair.
	SetAssignedBooking(ctx context.Context, staffID, bookingID string) error
}
