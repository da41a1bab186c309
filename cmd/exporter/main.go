package main

import (
	"context"
	"nasne-exporter/internal/config"
	"nasne-exporter/internal/logging"
	"nasne-exporter/internal/nasne"
	"nasne-exporter/internal/poller"
	"nasne-exporter/internal/server"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// serveFunc binds addr and serves handler until ctx ends, see server.Serve.
type serveFunc func(ctx context.Context, addr string, handler http.Handler) error

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Error configuring logging: %v", err)
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, server.Serve); err != nil {
		log.Errorf("Exporter stopped with error: %v", err)
		os.Exit(1)
	}
}

// run validates cfg and then serves the registry while polling the devices. Nothing is bound when the
// configuration is invalid.
func run(ctx context.Context, cfg *config.Config, serve serveFunc) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
		"devices": cfg.Devices,
	}).Info("Starting nasne exporter")

	registry := prometheus.NewRegistry()
	volumeMetrics := nasne.NewVolumeMetrics(registry)
	devicePoller := poller.New(
		nasne.NewClient(nil, cfg.DevicePort),
		volumeMetrics,
		cfg.Devices,
		cfg.Poller.GetInterval(),
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return serve(groupCtx, cfg.Poller.ListenAddress, server.NewMetricsRouter(registry))
	})
	group.Go(func() error {
		return devicePoller.Run(groupCtx)
	})

	return group.Wait()
}
