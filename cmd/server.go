package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vzahanych/rain-prediction-app/internal/config"
	"github.com/vzahanych/rain-prediction-app/internal/observability"
	"github.com/vzahanych/rain-prediction-app/internal/server"
	"github.com/vzahanych/rain-prediction-app/internal/service"
)

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the rain prediction web server",
		Long:  `Load the model artifact once and serve the prediction form, the JSON API, health probes and Prometheus metrics.`,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting rain prediction server",
		zap.String("config_path", configPath),
		zap.String("model_path", cfg.Model.Path),
		zap.Bool("zero_fill_missing", cfg.Features.ZeroFillMissing),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	forest, err := service.LoadModel(cfg.Model.Path)
	if err != nil {
		log.Error("Failed to load model artifact", zap.Error(err))
		return fmt.Errorf("cannot start without a model: %w", err)
	}
	log.Info("Model loaded",
		zap.String("model", forest.Name()),
		zap.Int("trees", forest.NumTrees()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)
	metrics.ModelTrees.Set(float64(forest.NumTrees()))

	svc := service.NewRainService(forest, log.Logger, tele)
	svc.SetMetricsRecorder(metrics)

	srv := server.NewServer(cfg, server.Deps{
		Service:   svc,
		Metrics:   metrics,
		Gatherer:  registry,
		Logger:    log.Logger,
		Telemetry: tele,
	})

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
