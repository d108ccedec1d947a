package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"anubhav/internal/external"
	"anubhav/internal/messaging"
	"anubhav/internal/metrics"
	"anubhav/internal/models"
	"anubhav/internal/repository"
	"anubhav/internal/search"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos        *repository.Repositories
	notifyClient *external.NotifyClient
	natsClient   *messaging.NATSClient
	esClient     *search.ElasticsearchClient
}

func NewHandlers(repos *repository.Repositories, notifyClient *external.NotifyClient, natsClient *messaging.NATSClient, esClient *search.ElasticsearchClient) *Handlers {
	return &Handlers{
		repos:        repos,
		notifyClient: notifyClient,
		natsClient:   natsClient,
		esClient:     esClient,
	}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	slog.Info("Processing booking created event",
		"booking_id", event.BookingID,
		"experience_id", event.ExperienceID,
		"date", event.Date)

	m.Ack()
}

func (h *Handlers) HandleBookingRated(m *stan.Msg) {
	var event models.BookingRatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking rated event", "error", err)
		return
	}

	slog.Info("Processing booking rated event",
		"booking_id", event.BookingID,
		"experience_id", event.ExperienceID,
		"rating", event.Rating)

	// Refresh the search document so the stored average stays queryable
	if h.esClient != nil {
		ctx := context.Background()
		exp, err := h.repos.Experiences.GetByID(ctx, event.ExperienceID)
		if err == nil && exp != nil {
			if err := h.esClient.Index(ctx, exp); err != nil {
				slog.Error("Failed to reindex rated experience", "experience_id", exp.ID, "error", err)
			}
		}
	}

	m.Ack()
}

func (h *Handlers) HandleExperienceCreated(m *stan.Msg) {
	var event models.ExperienceCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal experience created event", "error", err)
		return
	}

	slog.Info("Processing experience created event", "experience_id", event.ExperienceID)

	if h.esClient != nil {
		ctx := context.Background()
		exp, err := h.repos.Experiences.GetByID(ctx, event.ExperienceID)
		if err != nil {
			slog.Error("Failed to load experience for indexing", "experience_id", event.ExperienceID, "error", err)
			return
		}
		if exp != nil {
			if err := h.esClient.Index(ctx, exp); err != nil {
				slog.Error("Failed to index experience", "experience_id", exp.ID, "error", err)
				return
			}
		}
	}

	m.Ack()
}

func (h *Handlers) HandleExperienceDeleted(m *stan.Msg) {
	var event models.ExperienceDeletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal experience deleted event", "error", err)
		return
	}

	slog.Info("Processing experience deleted event", "experience_id", event.ExperienceID)

	if h.esClient != nil {
		if err := h.esClient.Delete(context.Background(), event.ExperienceID); err != nil {
			slog.Error("Failed to remove experience from index", "experience_id", event.ExperienceID, "error", err)
		}
	}

	m.Ack()
}

func (h *Handlers) HandleReminderSent(m *stan.Msg) {
	var event models.ReminderSentEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal reminder sent event", "error", err)
		return
	}

	slog.Info("Processing reminder sent event",
		"booking_id", event.BookingID,
		"channel", event.Channel)

	m.Ack()
}

// DeliverReminder sends one booking reminder through the notification
// gateway, honoring the guest's opt-in flags. The reminded flag only flips
// on a confirmed delivery, so an unconfirmed send is retried on the next
// sweep rather than lost.
func (h *Handlers) DeliverReminder(ctx context.Context, booking *models.Booking) error {
	user, err := h.repos.Users.GetByID(ctx, booking.UserID)
	if err != nil {
		return err
	}

	channel, recipient := pickChannel(user, booking)
	if channel == "" {
		// Fully opted out: mark reminded so the sweep stops picking it up
		slog.Info("Guest opted out of reminders", "booking_id", booking.ID)
		return h.repos.Bookings.MarkReminderSent(ctx, booking.ID)
	}

	resp, err := h.notifyClient.SendReminder(&external.SendReminderRequest{
		Channel:   channel,
		Recipient: recipient,
		Subject:   fmt.Sprintf("Reminder: %s tomorrow", booking.Title),
		Body: fmt.Sprintf("Hi %s! Your %s booking \"%s\" is coming up on %s at %s.",
			booking.GuestName, booking.Category, booking.Title, booking.Date, booking.Time),
	})
	if err != nil {
		return err
	}

	if !resp.Delivered {
		slog.Warn("Reminder delivery unconfirmed, will retry",
			"booking_id", booking.ID,
			"channel", channel,
			"message_id", resp.MessageID)
		return nil
	}

	if err := h.repos.Bookings.MarkReminderSent(ctx, booking.ID); err != nil {
		return err
	}

	metrics.RemindersSent.Inc()

	event := models.ReminderSentEvent{
		BookingID: booking.ID,
		Channel:   channel,
		Timestamp: time.Now(),
	}
	if err := h.natsClient.Publish(models.EventReminderSent, event); err != nil {
		slog.Error("Failed to publish reminder sent event",
			"error", err,
			"booking_id", booking.ID)
	}

	return nil
}

// pickChannel chooses a delivery channel from the guest's opt-in flags.
// Unknown users get the SMS default since every booking carries a phone.
func pickChannel(user *models.User, booking *models.Booking) (channel, recipient string) {
	if user == nil {
		return external.ChannelSMS, booking.GuestPhone
	}
	if user.SMSOptIn {
		return external.ChannelSMS, booking.GuestPhone
	}
	if user.EmailOptIn {
		return external.ChannelEmail, user.Email
	}
	return "", ""
}
