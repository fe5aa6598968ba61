// Command stormviz serves the storm track visualization API. The serve
// subcommand boots the full engine (store, scheduler, HTTP API, optional
// Kafka ingest); generate writes a deterministic synthetic storm fixture for
// demos and test data.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-track-viz/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/storm-track-viz/internal/adapter/kafka"
	"github.com/couchcryptid/storm-track-viz/internal/config"
	"github.com/couchcryptid/storm-track-viz/internal/domain"
	"github.com/couchcryptid/storm-track-viz/internal/intensity"
	"github.com/couchcryptid/storm-track-viz/internal/observability"
	"github.com/couchcryptid/storm-track-viz/internal/scheduler"
	"github.com/couchcryptid/storm-track-viz/internal/store"
	"github.com/couchcryptid/storm-track-viz/internal/synthetic"
)

var (
	genOutput string
	genSeed   int64
	genStorms int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stormviz",
		Short: "Tropical storm track visualization engine",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualization API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve()
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic storm fixture as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generate(cmd)
		},
	}
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "data/storms.json", "output JSON path")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "generator seed")
	generateCmd.Flags().IntVar(&genStorms, "storms", 4, "number of storms to generate")

	rootCmd.AddCommand(serveCmd, generateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	palette, rings, err := loadStyle(cfg, logger)
	if err != nil {
		logger.Error("failed to load style config", "error", err)
		return err
	}

	st := store.New(logger, metrics)
	sched := scheduler.New(cfg.MaxAnimations, logger, metrics)
	srv := httpapi.NewServer(cfg, st, sched, palette, rings, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var consumer *kafkaadapter.Consumer
	if cfg.KafkaEnabled {
		consumer = kafkaadapter.NewConsumer(cfg, st, logger, metrics)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("kafka consumer error", "error", err)
			}
		}()
	} else {
		storms := synthetic.Generate(cfg.SyntheticSeed, cfg.SyntheticStorms)
		loaded, err := st.ReplaceAll(storms)
		if err != nil {
			logger.Warn("some synthetic storms were rejected", "error", err)
		}
		logger.Info("synthetic storms loaded",
			"count", loaded, "seed", cfg.SyntheticSeed)
	}

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
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka consumer close error", "error", err)
		}
	}
	sched.Reset()

	logger.Info("shutdown complete")
	return nil
}

func loadStyle(cfg *config.Config, logger *slog.Logger) (intensity.Palette, []intensity.CircleConfig, error) {
	if cfg.StyleConfig == "" {
		return nil, nil, nil
	}
	palette, rings, err := intensity.LoadStyle(cfg.StyleConfig)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("style config loaded", "path", cfg.StyleConfig)
	return palette, rings, nil
}

func generate(cmd *cobra.Command) error {
	// Fixed clock so the same seed always writes the same fixture.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	storms := synthetic.Generate(genSeed, genStorms)

	if err := os.MkdirAll(filepath.Dir(genOutput), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(storms, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.WriteFile(genOutput, data, 0o600); err != nil {
		return err
	}

	cmd.Println(fmt.Sprintf("wrote %d storms to %s", len(storms), genOutput))
	return nil
}
