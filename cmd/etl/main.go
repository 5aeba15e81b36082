package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/pm10-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/pm10-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/pm10-etl/internal/adapter/kafka"
	"github.com/couchcryptid/pm10-etl/internal/adapter/localfs"
	"github.com/couchcryptid/pm10-etl/internal/config"
	"github.com/couchcryptid/pm10-etl/internal/observability"
	"github.com/couchcryptid/pm10-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out, err := csvfile.Create(cfg.OutputFile)
	if err != nil {
		return err
	}

	var loader pipeline.BatchLoader = out
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = pipeline.Tee(out, writer)
		logger.Info("kafka mirror enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}

	p := pipeline.New(localfs.NewSource(cfg.InputDir), loader, logger, metrics, pipeline.Options{
		PollutantCode:    cfg.PollutantCode,
		ValiditySentinel: cfg.ValiditySentinel,
		StrictNames:      cfg.StrictNames,
	})

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	_, runErr := p.Run(ctx)

	closeErr := out.Close()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := errors.Join(runErr, closeErr); err != nil {
		if srv != nil {
			shutdown(srv, cfg, logger)
		}
		return err
	}
	logger.Info("output written", "path", cfg.OutputFile)

	if srv != nil {
		// Keep serving /status and /metrics until asked to stop.
		<-ctx.Done()
		shutdown(srv, cfg, logger)
	}
	return nil
}

func shutdown(srv *httpadapter.Server, cfg *config.Config, logger *slog.Logger) {
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
