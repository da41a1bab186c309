package main

import (
	"context"
	"nasne-exporter/internal/config"
	"nasne-exporter/internal/gateway"
	"nasne-exporter/internal/logging"
	"nasne-exporter/internal/nasne"
	"nasne-exporter/internal/server"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Error configuring logging: %v", err)
	}
	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
	}).Info("Starting nasne gateway")

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter()
	gateway.NewHandler(nasne.NewClient(nil, cfg.DevicePort)).Register(router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, cfg.Gateway.ListenAddress(), router); err != nil {
		log.Errorf("Gateway stopped with error: %v", err)
		os.Exit(1)
	}
}
