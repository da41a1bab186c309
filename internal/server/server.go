package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// NewRouter creates a gin engine with panic recovery and access logging through logrus.
// The gin mode is left to the caller.
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), accessLog())

	return router
}

// NewMetricsRouter serves the metrics of gatherer in the Prometheus exposition format on every path.
func NewMetricsRouter(gatherer prometheus.Gatherer) *gin.Engine {
	metricsHandler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: log.StandardLogger(),
	})
	router := NewRouter()
	// gin presets 404 for unmatched routes and promhttp only writes a status on errors
	router.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusOK)
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	return router
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("Handled request")
	}
}

// Serve listens on addr and serves handler until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	log.Infof("start server %s", listener.Addr())

	return serve(ctx, listener, handler)
}

func serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info("Server stopped")

	return nil
}
