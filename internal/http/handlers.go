package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/platformview"
	"github.com/GriffinCanCode/AgentOS/webview/internal/ws"
)

const describeTimeout = 2 * time.Second

// Streams is the view of the WebSocket handler the endpoints read.
type Streams interface {
	Sessions(ctx context.Context) []ws.SessionInfo
	Count() int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	streams Streams
	metrics *monitoring.Metrics
	started time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(streams Streams, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		streams: streams,
		metrics: metrics,
		started: time.Now(),
	}
}

// Root describes the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"service":   "webview-bridge",
		"view_type": platformview.ViewType,
		"channel":   platformview.FactoryChannel,
		"stream":    "/stream",
	})
}

// Health reports liveness and connection counts
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"uptime":   time.Since(h.started).Round(time.Second).String(),
		"sessions": h.streams.Count(),
	})
}

// ListViews lists every session and the views it owns
func (h *Handlers) ListViews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), describeTimeout)
	defer cancel()

	sessions := h.streams.Sessions(ctx)
	total := 0
	for _, s := range sessions {
		total += len(s.Views)
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions":    sessions,
		"total_views": total,
	})
}

// ListMethods lists the methods every view channel answers
func (h *Handlers) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"view_type": platformview.ViewType,
		"methods":   platformview.Methods(),
	})
}

// MetricsJSON returns the counters as JSON
func (h *Handlers) MetricsJSON(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
