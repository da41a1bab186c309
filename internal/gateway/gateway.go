package gateway

import (
	"bytes"
	"nasne-exporter/internal/nasne"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Handler answers scrape requests by querying the device named in the target parameter.
// It keeps no state between requests.
type Handler struct {
	fetcher nasne.Fetcher
}

func NewHandler(fetcher nasne.Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// Register mounts the gateway routes.
func (h *Handler) Register(routes gin.IRoutes) {
	routes.GET("/metrics", h.handleMetrics)
	routes.GET("/healthz", h.handleHealth)
}

func (h *Handler) handleMetrics(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		c.String(http.StatusBadRequest, "target parameter is missing")
		return
	}

	observations, err := nasne.Collect(c.Request.Context(), h.fetcher, target)
	if err != nil {
		log.WithFields(log.Fields{
			"target": target,
			"error":  err,
		}).Warn("Failed to read device")
		c.String(http.StatusBadRequest, "failed to connect %s", target)
		return
	}

	var body bytes.Buffer
	if err := nasne.WriteText(&body, observations); err != nil {
		c.String(http.StatusInternalServerError, "failed to render metrics")
		return
	}
	c.Data(http.StatusOK, nasne.TextContentType, body.Bytes())
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
