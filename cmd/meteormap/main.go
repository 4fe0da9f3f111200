package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/meteorite-map/internal/adapter/http"
	"github.com/couchcryptid/meteorite-map/internal/adapter/fetch"
	kafkaadapter "github.com/couchcryptid/meteorite-map/internal/adapter/kafka"
	"github.com/couchcryptid/meteorite-map/internal/config"
	"github.com/couchcryptid/meteorite-map/internal/observability"
	"github.com/couchcryptid/meteorite-map/internal/pipeline"
	"github.com/couchcryptid/meteorite-map/internal/tooltip"
	"github.com/jonboulle/clockwork"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	tips, err := tooltip.NewRenderer(cfg.TooltipCacheSize, metrics)
	if err != nil {
		logger.Error("failed to create tooltip renderer", "error", err)
		return 1
	}

	// Impact stream is feature-flagged via KAFKA_BROKERS.
	var sink pipeline.ImpactSink
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger, metrics)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		sink = writer
		logger.Info("impact stream enabled", "topic", cfg.KafkaImpactTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("impact stream disabled")
	}

	client := fetch.NewClient(logger, metrics)
	p := pipeline.New(pipeline.SourcesFromConfig(cfg), client, tips, sink, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := p.Run(ctx)
	if res.MapErr == nil && cfg.OutputPath != "" {
		if err := writeDocument(p, cfg.OutputPath); err != nil {
			logger.Error("write document failed", "path", cfg.OutputPath, "error", err)
			return 1
		}
		logger.Info("document written", "path", cfg.OutputPath, "markers", len(res.Markers))
	}

	if !cfg.Serve {
		if res.MapErr != nil {
			return 1
		}
		return 0
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	if cfg.RefreshInterval > 0 {
		go p.Refresh(ctx, clockwork.NewRealClock(), cfg.RefreshInterval, func(res *pipeline.Result) {
			if res.MapErr != nil || cfg.OutputPath == "" {
				return
			}
			if err := writeDocument(p, cfg.OutputPath); err != nil {
				logger.Error("write document failed", "path", cfg.OutputPath, "error", err)
			}
		})
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return 0
}

func writeDocument(p *pipeline.Pipeline, path string) error {
	doc, err := p.Document()
	if err != nil {
		return err
	}
	return os.WriteFile(path, doc, 0o644) //nolint:gosec // a public web page
}
