package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows any origin to read the inspection endpoints and
// open the stream.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Accept",
			"Cache-Control",
			"Connection",
			"Origin",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Protocol",
			"Sec-WebSocket-Version",
			"Upgrade",
		},
		// Browsers hide Retry-After from script unless it is exposed.
		ExposeHeaders: []string{"Retry-After"},
		MaxAge:        12 * time.Hour,
	}
}

// CORS creates a CORS middleware with the provided configuration. The
// ws and wss schemes are accepted in origins so native clients can open the
// stream.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		AllowWebSockets:  true,
		MaxAge:           cfg.MaxAge,
	})
}
