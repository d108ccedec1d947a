package jobs

import (
	"context"
	"log/slog"
	"time"

	"anubhav/internal/consumers"
	"anubhav/internal/repository"
)

const reminderCheckInterval = 1 * time.Minute

// ReminderJob sweeps for bookings with an upcoming date and hands each one
// to the reminder delivery path. The sweep is idempotent: bookings stay in
// the result set until a delivery is confirmed.
type ReminderJob struct {
	bookingRepo *repository.BookingRepository
	handlers    *consumers.Handlers
	ticker      *time.Ticker
	done        chan bool
}

func NewReminderJob(bookingRepo *repository.BookingRepository, handlers *consumers.Handlers) *ReminderJob {
	return &ReminderJob{
		bookingRepo: bookingRepo,
		handlers:    handlers,
		done:        make(chan bool),
	}
}

// Start begins the background sweep
func (j *ReminderJob) Start(ctx context.Context) {
	slog.Info("Starting reminder job", "check_interval", reminderCheckInterval.String())

	j.ticker = time.NewTicker(reminderCheckInterval)

	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.sweep(ctx)
			case <-j.done:
				slog.Info("Reminder job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *ReminderJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

// sweep finds bookings dated today or tomorrow that have no confirmed
// reminder yet and attempts delivery for each.
func (j *ReminderJob) sweep(ctx context.Context) {
	horizon := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	bookings, err := j.bookingRepo.GetUnreminded(ctx, horizon)
	if err != nil {
		slog.Error("Failed to get unreminded bookings", "error", err)
		return
	}

	if len(bookings) == 0 {
		slog.Debug("No reminders due")
		return
	}

	slog.Info("Found bookings due a reminder", "count", len(bookings))

	for i := range bookings {
		booking := &bookings[i]
		if err := j.handlers.DeliverReminder(ctx, booking); err != nil {
			slog.Error("Failed to deliver reminder",
				"error", err,
				"booking_id", booking.ID,
				"date", booking.Date)
		}
	}
}
