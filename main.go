package main

import (
	"context"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"event-planner/core"
	"event-planner/pkg/resources"
	"event-planner/pkg/servers"
)

func main() {
	name, version := "event-planner", "1.0"

	// 1. Config and logger
	cfg, err := resources.LoadConfig(name, version, ".env")
	if err != nil {
		log.Fatal().Err(err).Str("stage", "startup").Str("component", "main").Msg("unable to load config")
	}

	logger := resources.ConfigureLogger(cfg, os.Stdout)
	ctx := logger.WithContext(context.Background())

	startupLogger := log.Ctx(ctx).With().Str("stage", "startup").Str("component", "main").Logger()
	shutdownLogger := log.Ctx(ctx).With().Str("stage", "shut down").Str("component", "main").Logger()

	startupLogger.Info().Msg("application starting up")
	defer shutdownLogger.Info().Msg("application stopped")

	// 2. Telemetry (traces/metrics/logs), zerolog is bridged to the OTel log provider
	if cfg.OtelEnabled {
		var stopFn resources.StopFn

		ctx, stopFn, err = resources.Observe(ctx, cfg)
		if err != nil {
			shutdownLogger.Fatal().Err(err).Msg("unable to setup otel telemetry")
		}
		defer stopFn(ctx, 15*time.Second)
	}

	// 3. Schema migrations
	if cfg.DBMigrate {
		err = resources.RunMigrations(ctx, cfg)
		if err != nil {
			shutdownLogger.Fatal().Err(err).Msg("unable to run database migrations")
		}
	}

	// 4. Core resources
	pool, stopFn, err := resources.CreateDatabaseConnectionPool(ctx, cfg)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg("unable to create database connection pool")
	}
	defer stopFn(ctx, 15*time.Second)

	translator, err := core.NewTranslator(cfg.DefaultLocale)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg("unable to load translations")
	}

	// 5. Wiring
	repo := core.NewRepository(pool)
	handlers := core.NewHandlers(repo, translator)

	// 6. Daemons/servers setup
	gin.SetMode(gin.ReleaseMode)

	restHandler := gin.New()
	restHandler.Use(gin.Recovery())
	restHandler.Use(resources.LoggerMiddleware())
	restHandler.Use(resources.TracerMiddleware(name))
	restHandler.Use(resources.MeterMiddleware(name))

	core.Register(restHandler, handlers)

	debugHandler := http.NewServeMux()
	debugHandler.HandleFunc("/debug/pprof/", pprof.Index)
	debugHandler.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	debugHandler.HandleFunc("/debug/pprof/profile", pprof.Profile)
	debugHandler.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	debugHandler.HandleFunc("/debug/pprof/trace", pprof.Trace)
	debugHandler.Handle("/metrics", promhttp.Handler())

	// 7. Daemons/servers lifecycle
	errChan := make(chan error, 16)

	stopFn = servers.Manage(ctx, "base-server", servers.NewBaseServer("base-server"), errChan)
	defer stopFn(ctx, 15*time.Second)

	debugServer := servers.NewServer(cfg.HTTPHost, cfg.DebugPort, debugHandler)
	stopFn = servers.Manage(ctx, "debug-server", servers.NewHttpServer("debug-server", debugServer), errChan)
	defer stopFn(ctx, 15*time.Second)

	restServer := servers.NewServer(cfg.HTTPHost, cfg.HTTPPort, restHandler)
	stopFn = servers.Manage(ctx, "rest-server", servers.NewHttpServer("rest-server", restServer), errChan)
	defer stopFn(ctx, 15*time.Second)

	startupLogger.Info().Str("port", cfg.HTTPPort).Msg("application running")

	// 8. Wait for shutdown signal
	notifyCtx, cancelNotifyFn := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancelNotifyFn()

	select {
	case <-notifyCtx.Done():
		startupLogger.Info().Msg("application shutdown requested")
	case runErr := <-errChan:
		shutdownLogger.Error().Err(runErr).Msg("runtime error")
	}
}
