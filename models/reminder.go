package models

// ReminderPayload is the asynq task payload for a session reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	ClientID  string `json:"clientId"`
	FireDate  string `json:"fireDate"` // RFC3339 instant the reminder was scheduled for
}
