package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"lumiere/config"
	bookingRepo "lumiere/database/repository/booking"
	"lumiere/models"
	"lumiere/services/tasks"
	"lumiere/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(bookings bookingRepo.Repository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, handleSessionReminder(bookings))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleSessionReminder re-checks the booking at fire time: reminders
// scheduled before a cancellation are silently dropped.
func handleSessionReminder(bookings bookingRepo.Repository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		booking, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				logger.Warn("reminder for unknown booking, dropping",
					zap.String("bookingId", p.BookingID))
				return nil
			}
			return err
		}
		if booking.Status != models.BookingUpcoming {
			logger.Debug("skipping reminder for non-upcoming booking",
				zap.String("bookingId", booking.ID),
				zap.String("status", string(booking.Status)))
			return nil
		}

		logger.Info("session reminder",
			zap.String("bookingId", booking.ID),
			zap.String("clientId", booking.ClientID),
			zap.String("email", booking.Email),
			zap.Time("session", booking.DateTime))
		return nil
	}
}
