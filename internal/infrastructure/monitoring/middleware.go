package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection.
// Routes are labelled by their pattern so path parameters do not explode
// label cardinality.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures one method call.
type Timer struct {
	start   time.Time
	metrics *Metrics
	method  string
}

// NewTimer starts a timer. A nil metrics makes Stop a no-op.
func NewTimer(metrics *Metrics, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		method:  method,
	}
}

// Stop records the call with its outcome.
func (t *Timer) Stop(status string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordMethodCall(t.method, status, time.Since(t.start))
}
