package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-widget/internal/config"
	"github.com/vzahanych/weather-widget/internal/service"
	"github.com/vzahanych/weather-widget/pkg/logger"
	"github.com/vzahanych/weather-widget/pkg/telemetry"
	"go.uber.org/zap"
)

var (
	configPath string
	log        *zap.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "City weather lookup widget",
		Long:  `Look up current conditions and a five day forecast for a city, from the terminal or through a small web widget.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdownServices()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd)
	cmd.AddCommand(searchCmd)
	cmd.AddCommand(interactiveCmd)

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Info("Received shutdown signal", zap.String("signal", sig.String()))
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices(ctx context.Context) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Set config
	config.SetConfig(cfg)

	// 3. Initialize logger
	log, err = logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	tele, err = telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
	}

	return nil
}

func shutdownServices() error {
	if err := tele.Shutdown(context.Background()); err != nil && log != nil {
		log.Warn("Failed to shut down telemetry", zap.Error(err))
	}
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

// newClients builds the geocoding and forecast clients sharing one outbound limiter.
func newClients(cfg *config.Config) (*service.GeocodingService, *service.OpenMeteoService) {
	limiter := service.NewLimiter(cfg.Weather.RateLimit)
	geocoder := service.NewGeocodingServiceWithConfig(cfg.Weather, limiter, log, tele)
	forecaster := service.NewOpenMeteoServiceWithConfig(cfg.Weather, limiter, log, tele)
	return geocoder, forecaster
}
