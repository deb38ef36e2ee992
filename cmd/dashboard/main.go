package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/ankiibott/Forest-fire-prediction/internal/adapter/http"
	kafkaadapter "github.com/ankiibott/Forest-fire-prediction/internal/adapter/kafka"
	"github.com/ankiibott/Forest-fire-prediction/internal/config"
	"github.com/ankiibott/Forest-fire-prediction/internal/observability"
	"github.com/ankiibott/Forest-fire-prediction/internal/predict"
	"github.com/ankiibott/Forest-fire-prediction/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := predict.NewClient(cfg, metrics, logger)
	store := state.NewStore(clockwork.NewRealClock())

	// Run event publishing is feature-flagged via KAFKA_ENABLED.
	var publisher httpadapter.RunPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		metrics.PublisherEnabled.Set(1)
		logger.Info("run event publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("run event publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, client, publisher, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
