package models

import "time"

// BookingStatus is the lifecycle state of a booking. Completed and
// Cancelled are terminal.
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "Upcoming"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

// PaymentStatus tracks payment independently of the booking lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Booking represents a scheduled studio session.
type Booking struct {
	ID              string        `bson:"id" json:"id"`                           // Unique booking identifier (UUID)
	DateTime        time.Time     `bson:"dateTime" json:"dateTime"`               // Session start instant
	Date            string        `bson:"date" json:"date"`                       // Session day in "YYYY-MM-DD", denormalized for day queries
	ClientID        string        `bson:"clientId" json:"clientId"`               // Client who requested the session
	Email           string        `bson:"email" json:"email"`                     // Contact email
	Phone           string        `bson:"phone" json:"phone"`                     // Contact phone
	PackageID       string        `bson:"packageId" json:"packageId"`             // Opaque service-package reference
	PackageName     string        `bson:"packageName" json:"packageName"`         // Display name for the package
	Location        string        `bson:"location,omitempty" json:"location,omitempty"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	AssignedStaffID string        `bson:"assignedStaffId,omitempty" json:"assignedStaffId,omitempty"` // Set only by staff assignment
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// DateKey formats an instant as the calendar-day key used by the
// capacity ledger and the day-indexed queries.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
