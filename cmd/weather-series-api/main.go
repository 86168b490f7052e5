package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	httpapi "github.com/ryota0051/033-web-api/internal/api/http"
	"github.com/ryota0051/033-web-api/internal/config"
	"github.com/ryota0051/033-web-api/internal/scheduler"
	"github.com/ryota0051/033-web-api/internal/series"
	"github.com/ryota0051/033-web-api/internal/weather"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := cfg.NewLogger()

	// Series files are read fresh from the data root on every request.
	loader := series.NewLoader(cfg.DataRoot)
	service := weather.NewService(loader, cfg.ColumnsReferenceLocation, log)

	// Optional periodic audit of the data root.
	sched := scheduler.New(loader, cfg.AuditInterval, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := httpapi.NewApp(httpapi.Options{
		AppName:          "weather-series-api",
		ReadTimeout:      cfg.ReadTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:        true,
		Logger:           log,
		Metrics:          httpapi.NewMetrics(registry),
	})
	httpapi.RegisterRoutes(app, service)

	go func() {
		log.WithField("port", cfg.Port).WithField("data_root", cfg.DataRoot).Info("starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
