package consumers

import (
	"context"
	"log/slog"

	"anubhav/internal/config"
	"anubhav/internal/database"
	"anubhav/internal/external"
	"anubhav/internal/messaging"
	"anubhav/internal/repository"
	"anubhav/internal/search"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)

	notifyClient := external.NewNotifyClient(cfg.Notify)

	// Indexing from the consumer side keeps search writes off the request
	// path. A missing cluster only degrades search results.
	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		slog.Warn("Elasticsearch unavailable, catalog events will not be indexed", "error", err)
		esClient = nil
	}

	handlers := NewHandlers(repos, notifyClient, natsClient, esClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Repositories() *repository.Repositories {
	return cs.repos
}

func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Handlers() *Handlers {
	return cs.handlers
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	_, err := cs.nats.SubscribeQueue("booking.created", "anubhav-consumers", cs.handlers.HandleBookingCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("booking.rated", "anubhav-consumers", cs.handlers.HandleBookingRated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("experience.created", "anubhav-consumers", cs.handlers.HandleExperienceCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("experience.deleted", "anubhav-consumers", cs.handlers.HandleExperienceDeleted)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("reminder.sent", "anubhav-consumers", cs.handlers.HandleReminderSent)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
