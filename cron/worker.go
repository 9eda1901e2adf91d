package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tidybook/config"
	"tidybook/models"
	"tidybook/services/notification"
	"tidybook/utils"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// How far ahead of the appointment the reminder fires.
const reminderLead = 24 * time.Hour

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues appointment reminders onto the asynq queue.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler builds a scheduler backed by the reminder queue.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleBookingReminders enqueues a day-before reminder for both parties of
// a confirmed booking. Bookings closer than the lead time get no reminder.
func (s *ReminderScheduler) ScheduleBookingReminders(booking *models.Booking) error {
	fireAt := booking.Start.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	when, err := utils.FormatTime(booking.Start, "UTC")
	if err != nil {
		when = booking.Date
	}
	payloads := []models.ReminderPayload{
		{
			BookingID: booking.ID,
			Target:    "homeowner",
			TargetID:  booking.ClientID,
			Title:     "Upcoming cleaning appointment",
			Body:      fmt.Sprintf("Your cleaning on %s at %s UTC is tomorrow.", booking.Date, when),
			FireDate:  fireAt.Format(time.RFC3339),
		},
		{
			BookingID: booking.ID,
			Target:    "housekeeper",
			TargetID:  booking.HousekeeperID,
			Title:     "Upcoming appointment",
			Body:      fmt.Sprintf("You have a cleaning for %s on %s.", booking.ClientName, booking.Date),
			FireDate:  fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range payloads {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal reminder payload: %w", err)
		}
		task := asynq.NewTask(TypeAppointmentReminder, data)
		if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
			return fmt.Errorf("enqueue reminder for booking %s: %w", p.BookingID, err)
		}
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentReminder, handleReminderTask(notifSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
		}

		var err error
		switch p.Target {
		case "homeowner":
			err = notifSvc.NotifyHomeowner(ctx, p.TargetID, p.Title, p.Body, data)
		case "housekeeper":
			err = notifSvc.NotifyHousekeeper(ctx, p.TargetID, p.Title, p.Body, data)
		default:
			log.Printf("[ReminderHandler] unknown target type: %s", p.Target)
			return nil
		}

		if err != nil {
			log.Printf("[ReminderHandler] failed to send notification: %v", err)
		}
		return err
	}
}
