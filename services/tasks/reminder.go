package tasks

import (
	"encoding/json"
	"time"

	"lumiere/config"
	"lumiere/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "reminder:session"

// NewSessionReminderTask builds the asynq task for a session reminder.
func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues session reminders ahead of each booking's
// session time.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler connects an asynq client to the queue Redis DB.
func NewReminderScheduler(leadHours int) *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &ReminderScheduler{
		client: client,
		lead:   time.Duration(leadHours) * time.Hour,
	}
}

// ScheduleSessionReminder enqueues a reminder to fire lead hours before
// the session. Sessions closer than the lead fire immediately.
func (s *ReminderScheduler) ScheduleSessionReminder(booking models.Booking) error {
	fireAt := booking.DateTime.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		ClientID:  booking.ClientID,
		FireDate:  fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

// Close releases the underlying asynq client.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}
