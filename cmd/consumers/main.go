package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anubhav/cmd/consumers/jobs"
	"anubhav/internal/config"
	"anubhav/internal/consumers"
	"anubhav/internal/logger"
)

func main() {
	log.Println("Starting consumers service...")

	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Separate NATS client ID so both binaries can run against one cluster
	cfg.NATS.ClientID = "anubhav-consumers"

	consumerService, err := consumers.NewConsumerService(cfg)
	if err != nil {
		log.Fatalf("Failed to create consumer service: %v", err)
	}

	if err := consumerService.Start(); err != nil {
		log.Fatalf("Failed to start consumers: %v", err)
	}

	// Background reminder sweep
	jobCtx, jobCancel := context.WithCancel(context.Background())
	reminderJob := jobs.NewReminderJob(consumerService.Repositories().Bookings, consumerService.Handlers())
	reminderJob.Start(jobCtx)

	log.Println("Consumers service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down consumers service...")

	reminderJob.Stop()
	jobCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := consumerService.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Consumers service stopped")
}
