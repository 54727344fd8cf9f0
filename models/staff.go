package models

import "time"

// Staff represents a studio staff member with a calendar-granularity
// availability window. AssignedBookingID and the booking's
// AssignedStaffID form a pointer pair that is always updated together.
type Staff struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	AvailabilityStart string    `bson:"availabilityStart" json:"availabilityStart"` // "YYYY-MM-DD", inclusive
	AvailabilityEnd   string    `bson:"availabilityEnd" json:"availabilityEnd"`     // "YYYY-MM-DD", inclusive
	AssignedBookingID string    `bson:"assignedBookingId,omitempty" json:"assignedBookingId,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
