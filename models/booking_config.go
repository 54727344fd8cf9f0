package models

// BookingConfig is the process-wide booking policy. It is created once
// with defaults and mutated in place by admin action; every engine call
// reads the current value.
type BookingConfig struct {
	MaxBookingsPerDay       int `bson:"maxBookingsPerDay" json:"maxBookingsPerDay" validate:"gte=1"`
	MinAdvanceBookingDays   int `bson:"minAdvanceBookingDays" json:"minAdvanceBookingDays" validate:"gte=0"`
	MaxAdvanceBookingDays   int `bson:"maxAdvanceBookingDays" json:"maxAdvanceBookingDays" validate:"gte=0,gtefield=MinAdvanceBookingDays"`
	CancellationWindowHours int `bson:"cancellationWindowHours" json:"cancellationWindowHours" validate:"gte=0"`
	RescheduleWindowHours   int `bson:"rescheduleWindowHours" json:"rescheduleWindowHours" validate:"gte=0"`
}
