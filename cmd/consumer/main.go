package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"gitlab.com/dormdrop/dormdrop/internal/logger"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
)

const (
	defaultBrokers = "localhost:9092"
	defaultTopic   = "package_events"
	groupID        = "package-events-consumer-group"
)

// Reads the package event stream and prints each signing and intake event.
// Meant for tailing the feed during development and demos.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = defaultBrokers
	}
	topic := os.Getenv("KAFKA_EVENTS_TOPIC")
	if topic == "" {
		topic = defaultTopic
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("close reader", zap.Error(err))
		}
	}()

	log.Info("consumer connected", zap.String("topic", topic), zap.String("brokers", brokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("read message", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		var event repository.PackageEventPayload
		if err := json.Unmarshal(m.Value, &event); err != nil {
			log.Warn("undecodable event",
				zap.ByteString("key", m.Key),
				zap.ByteString("value", m.Value))
			continue
		}

		log.Info("package event",
			zap.Time("timestamp", event.Timestamp),
			zap.String("action", event.Action),
			zap.String("package_id", event.PackageID),
			zap.String("building", event.Building),
			zap.String("room", event.Room),
			zap.String("tracking", event.Tracking),
			zap.String("receiver", event.Receiver),
			zap.Int64("offset", m.Offset))
	}
}
