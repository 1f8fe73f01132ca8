package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/higordev223/salute-child/config"
	"github.com/higordev223/salute-child/models"
	"github.com/higordev223/salute-child/services/notification"
	"github.com/higordev223/salute-child/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "booking:reminder"

// ReminderScheduler enqueues delayed reminder tasks for confirmed bookings.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{client: client}
}

// ScheduleReminder enqueues a reminder that fires ReminderLeadMinutes before
// the booking's start time. Bookings already inside the lead window get an
// immediate reminder instead.
func (s *ReminderScheduler) ScheduleReminder(payload models.ReminderPayload) error {
	logger := utils.GetLogger().Sugar()

	startAt, err := bookingStart(payload.Date, payload.StartTime)
	if err != nil {
		return fmt.Errorf("invalid booking start: %w", err)
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := startAt.Add(-lead)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingReminder, data)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(30 * time.Second)}
	if fireAt.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}

	info, err := s.client.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	logger.Infow("Scheduled booking reminder",
		"bookingId", payload.BookingID,
		"taskId", info.ID,
		"fireAt", fireAt.Format(time.RFC3339))
	return nil
}

func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

func bookingStart(date, clock string) (time.Time, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := models.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minute) * time.Minute), nil
}

// StartReminderWorker runs the asynq server that delivers booking reminders.
// It blocks, so callers run it in a goroutine.
func StartReminderWorker(notifier notification.NotificationService) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal reminder payload: %w", err)
		}
		return notifier.SendBookingReminder(ctx, payload)
	})

	logger.Info("Starting booking reminder worker", zap.Int("redisDB", config.AppConfig.RedisReminderQueueDB))
	if err := srv.Run(mux); err != nil {
		logger.Fatal("Reminder worker failed", zap.Error(err))
	}
}
