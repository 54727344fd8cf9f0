package scheduling

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors for transport mapping. Validation
// errors are recoverable by resubmitting corrected input, policy
// violations are expected user-facing rejections, state conflicts mean
// the operation is no longer applicable (usually a race with another
// actor), and internal errors are opaque storage failures.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation_error"
	KindPolicy        ErrorKind = "policy_violation"
	KindStateConflict ErrorKind = "state_conflict"
	KindNotFound      ErrorKind = "not_found"
	KindInternal      ErrorKind = "internal_error"
)

const (
	CodeMissingField                = "MissingField"
	CodeMalformedField              = "MalformedField"
	CodeOutOfAdvanceWindow          = "OutOfAdvanceWindow"
	CodeCapacityExceeded            = "CapacityExceeded"
	CodeCancellationWindowViolation = "CancellationWindowViolation"
	CodeReschedulingWindowViolation = "ReschedulingWindowViolation"
	CodeInvalidStateTransition      = "InvalidStateTransition"
	CodeInvalidPaymentTransition    = "InvalidPaymentTransition"
	CodeAlreadyAssigned             = "AlreadyAssigned"
	CodeBookingNotEligible          = "BookingNotEligible"
	CodeBookingCancelled            = "BookingCancelled"
	CodeNotFound                    = "NotFound"
	CodeInternal                    = "InternalError"
)

// Error is the typed error returned by every engine operation. Policy
// violations carry the configured threshold that was violated so the UI
// can explain the rejection.
type Error struct {
	Kind      ErrorKind `json:"errorKind"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Threshold int       `json:"threshold,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsEngineError unwraps err into an *Error when possible.
func AsEngineError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newMissingField(field string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("required field %q is missing", field),
	}
}

func newMalformedField(field, detail string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeMalformedField,
		Message: fmt.Sprintf("field %q is malformed: %s", field, detail),
	}
}

func newOutOfAdvanceWindow(minDays, maxDays, violated int) *Error {
	return &Error{
		Kind:      KindPolicy,
		Code:      CodeOutOfAdvanceWindow,
		Message:   fmt.Sprintf("session must be booked between %d and %d days in advance", minDays, maxDays),
		Threshold: violated,
	}
}

func newCapacityExceeded(date string, max int) *Error {
	return &Error{
		Kind:      KindPolicy,
		Code:      CodeCapacityExceeded,
		Message:   fmt.Sprintf("no capacity left on %s (limit %d per day)", date, max),
		Threshold: max,
	}
}

func newCancellationWindowViolation(hours int) *Error {
	return &Error{
		Kind:      KindPolicy,
		Code:      CodeCancellationWindowViolation,
		Message:   fmt.Sprintf("bookings can only be cancelled at least %d hours before the session", hours),
		Threshold: hours,
	}
}

func newReschedulingWindowViolation(hours int) *Error {
	return &Error{
		Kind:      KindPolicy,
		Code:      CodeReschedulingWindowViolation,
		Message:   fmt.Sprintf("bookings can only be rescheduled at least %d hours before the session", hours),
		Threshold: hours,
	}
}

func newInvalidStateTransition(from, op string) *Error {
	return &Error{
		Kind:    KindStateConflict,
		Code:    CodeInvalidStateTransition,
		Message: fmt.Sprintf("cannot %s a booking in state %s", op, from),
	}
}

func newInvalidPaymentTransition(from, to string) *Error {
	return &Error{
		Kind:    KindStateConflict,
		Code:    CodeInvalidPaymentTransition,
		Message: fmt.Sprintf("payment status cannot move from %s to %s", from, to),
	}
}

func newAlreadyAssigned(staffID, bookingID string) *Error {
	return &Error{
		Kind:    KindStateConflict,
		Code:    CodeAlreadyAssigned,
		Message: fmt.Sprintf("staff %s or booking %s already carries an assignment", staffID, bookingID),
	}
}

func newBookingNotEligible(bookingID, reason string) *Error {
	return &Error{
		Kind:    KindStateConflict,
		Code:    CodeBookingNotEligible,
		Message: fmt.Sprintf("booking %s is not eligible for assignment: %s", bookingID, reason),
	}
}

func newBookingCancelled(bookingID string) *Error {
	return &Error{
		Kind:    KindStateConflict,
		Code:    CodeBookingCancelled,
		Message: fmt.Sprintf("booking %s was cancelled", bookingID),
	}
}

func newNotFound(what, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", what, id),
	}
}

func newInternalError(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: err.Error(),
	}
}
