package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gitlab.com/dormdrop/dormdrop/internal/db"
	"gitlab.com/dormdrop/dormdrop/internal/engine"
	kafkapkg "gitlab.com/dormdrop/dormdrop/internal/kafka"
	"gitlab.com/dormdrop/dormdrop/internal/logger"
	"gitlab.com/dormdrop/dormdrop/internal/repository/postgresql"
	"gitlab.com/dormdrop/dormdrop/internal/server"
	"gitlab.com/dormdrop/dormdrop/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.GetPool().Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	db.InitStaff(database)

	adapter := store.New(database, log, store.Options{
		EventsTopic: os.Getenv("KAFKA_EVENTS_TOPIC"),
	})

	eng := engine.New(adapter, log)

	// A failed subscription latches the engine: every operation answers 503
	// until the process restarts with a healthy store.
	go adapter.SubscribePackages(ctx, eng.Ingest, eng.Fail)
	go adapter.SubscribeConfig(ctx, eng.IngestConfig, eng.Fail)

	var producer kafkapkg.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafkapkg.NewWriterProducer(brokers, log)
	} else {
		log.Info("KAFKA_BROKERS unset, events go to the console producer")
		producer = kafkapkg.NewConsoleProducer(log)
	}
	publisher := kafkapkg.NewPublisher(database, postgresql.NewOutboxTaskRepo(), producer, kafkapkg.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
	}, log)
	go publisher.Run(ctx)

	srv := server.New(eng, adapter, log)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "9000"
	}

	go func() {
		if err := srv.Run(ctx, port); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	publisher.Shutdown()
	log.Info("stopped")
}
