package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	staffRepo "lumiere/database/repository/staff"
	"lumiere/models"

	"github.com/google/uuid"
)

// RegisterStaff creates a staff member with a calendar-granularity
// availability window.
func (se *DefaultSchedulingEngine) RegisterStaff(ctx context.Context, in models.StaffInput) (*models.Staff, error) {
	if in.Name == "" {
		return nil, newMissingField("name")
	}
	start, err := time.ParseInLocation("2006-01-02", in.AvailabilityStart, time.Local)
	if err != nil {
		return nil, newMalformedField("availabilityStart", "expected YYYY-MM-DD")
	}
	end, err := time.ParseInLocation("2006-01-02", in.AvailabilityEnd, time.Local)
	if err != nil {
		return nil, newMalformedField("availabilityEnd", "expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, newMalformedField("availabilityEnd", "must not precede availabilityStart")
	}

	staff := &models.Staff{
		ID:                uuid.New().String(),
		Name:              in.Name,
		AvailabilityStart: in.AvailabilityStart,
		AvailabilityEnd:   in.AvailabilityEnd,
		CreatedAt:         se.Clock.Now(),
	}
	if err := se.Staff.Insert(ctx, staff); err != nil {
		return nil, newInternalError(fmt.Errorf("failed to persist staff member: %w", err))
	}
	return staff, nil
}

// EligibleBookings returns all Upcoming, unassigned bookings whose date
// falls inside the staff member's availability window, date-only and
// inclusive on both ends. No qualifying bookings is an empty list, not
// an error.
func (se *DefaultSchedulingEngine) EligibleBookings(ctx context.Context, staffID string) ([]models.Booking, error) {
	staff, err := se.loadStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	bookings, err := se.Bookings.ListUnassignedUpcoming(ctx, staff.AvailabilityStart, staff.AvailabilityEnd)
	if err != nil {
		return nil, newInternalError(err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// Assign binds a staff member to a booking. Eligibility is re-checked
// here at commit time, not just at listing time, because the booking may
// have been cancelled or taken in between. Both sides of the pointer
// pair are written booking-first with compensation on the staff side.
func (se *DefaultSchedulingEngine) Assign(ctx context.Context, staffID, bookingID string) (*models.Staff, *models.Booking, error) {
	se.mu.Lock()
	defer se.mu.Unlock()

	staff, err := se.loadStaff(ctx, staffID)
	if err != nil {
		return nil, nil, err
	}
	booking, err := se.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if staff.AssignedBookingID != "" || booking.AssignedStaffID != "" {
		return nil, nil, newAlreadyAssigned(staffID, bookingID)
	}
	if booking.Status == models.BookingCancelled {
		return nil, nil, newBookingCancelled(bookingID)
	}
	if booking.Status != models.BookingUpcoming {
		return nil, nil, newBookingNotEligible(bookingID, "booking is not upcoming")
	}
	// Day keys are YYYY-MM-DD, so lexical comparison is date order.
	if booking.Date < staff.AvailabilityStart || booking.Date > staff.AvailabilityEnd {
		return nil, nil, newBookingNotEligible(bookingID, "session date is outside the staff availability window")
	}

	if err := se.Bookings.SetAssignedStaff(ctx, bookingID, staffID); err != nil {
		return nil, nil, newInternalError(fmt.Errorf("failed to set booking assignment: %w", err))
	}
	if err := se.Staff.SetAssignedBooking(ctx, staffID, bookingID); err != nil {
		// Compensate the booking side so the pointer pair stays consistent.
		if rbErr := se.Bookings.SetAssignedStaff(ctx, bookingID, ""); rbErr != nil {
			se.logger().Error("failed to roll back booking assignment after staff-side failure")
		}
		return nil, nil, newInternalError(fmt.Errorf("failed to set staff assignment: %w", err))
	}

	staff.AssignedBookingID = bookingID
	booking.AssignedStaffID = staffID
	return staff, booking, nil
}

func (se *DefaultSchedulingEngine) loadStaff(ctx context.Context, staffID string) (*models.Staff, error) {
	staff, err := se.Staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrNotFound) {
			return nil, newNotFound("staff", staffID)
		}
		return nil, newInternalError(err)
	}
	return staff, nil
}
