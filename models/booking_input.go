package models

import "time"

// CreateBookingInput holds the client-submitted fields for a new booking.
type CreateBookingInput struct {
	DateTime    time.Time `json:"dateTime"`
	ClientID    string    `json:"clientId"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	PackageID   string    `json:"packageId"`
	PackageName string    `json:"packageName"`
	Location    string    `json:"location"`
}

// RescheduleBookingInput carries the new session instant.
type RescheduleBookingInput struct {
	NewDateTime time.Time `json:"newDateTime"`
}

// UpdatePaymentStatusInput carries the requested payment transition.
type UpdatePaymentStatusInput struct {
	Status PaymentStatus `json:"status"`
}

// StaffInput holds the fields for registering a staff member.
type StaffInput struct {
	Name              string `json:"name" validate:"required"`
	AvailabilityStart string `json:"availabilityStart" validate:"required,datetime=2006-01-02"`
	AvailabilityEnd   string `json:"availabilityEnd" validate:"required,datetime=2006-01-02"`
}
