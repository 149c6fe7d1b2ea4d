package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"academy-assistant/internal/common/config"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/common/observability"
	"academy-assistant/internal/conversation"
	"academy-assistant/internal/server"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		return runServe(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Override the configured HTTP port")
}

func runServe(ctx context.Context, cfg *config.Config) error {
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	zapLog := logger.New(level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting academy assistant", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"port":        cfg.Server.Port,
	})

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var obs *observability.Observability
	if cfg.Observability.MetricsEnabled {
		obs, err = observability.New(cfg.App.Name, nil)
		if err != nil {
			log.Warn("OpenTelemetry metrics disabled", map[string]interface{}{"error": err.Error()})
		} else {
			defer obs.Shutdown(context.Background())
		}
	}

	if mem, ok := a.store.(*conversation.MemoryStore); ok {
		go mem.Run(ctx, time.Minute)
	}

	srv := server.New(cfg.Server, server.Dependencies{
		Router:        a.router,
		Store:         a.store,
		Observability: obs,
		Checks:        a.checks,
		Logger:        log,
	})
	if err := srv.Run(ctx); err != nil {
		return err
	}

	log.Info("Academy assistant stopped gracefully", nil)
	return nil
}
