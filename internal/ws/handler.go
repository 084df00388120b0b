package ws

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/engine"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/platformview"
)

// Options configures a Handler.
type Options struct {
	Settings config.EngineConfig
	// Fetcher is shared by every session. Defaults to one built from Settings.
	Fetcher *engine.Fetcher
	// Defaults are merged under the params of every view created.
	Defaults map[string]interface{}
	Logger   *zap.Logger
	Metrics  *monitoring.Metrics
}

// Handler accepts WebSocket connections and runs a Session for each.
type Handler struct {
	settings config.EngineConfig
	fetcher  *engine.Fetcher
	defaults map[string]interface{}
	codec    *channel.Codec
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	upgrader websocket.Upgrader

	ctx      context.Context
	cancel   context.CancelFunc
	sessions sync.Map

	// mu orders wg.Add in Serve against wg.Wait in Close.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// SessionInfo describes one connected session.
type SessionInfo struct {
	ID        string                  `json:"id"`
	Connected time.Time               `json:"connected_at"`
	Views     []platformview.ViewInfo `json:"views"`
}

// NewHandler creates a WebSocket handler.
func NewHandler(opts Options) *Handler {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = engine.NewFetcher(opts.Settings)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		settings: opts.Settings,
		fetcher:  fetcher,
		defaults: opts.Defaults,
		codec:    channel.NewCodec(),
		logger:   logging.OrNop(opts.Logger).Named("ws"),
		metrics:  opts.Metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// HandleConnection upgrades the request and serves the session until the
// connection closes.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.Serve(conn)
}

// Serve runs a session on an established connection and blocks until it
// ends.
func (h *Handler) Serve(conn *websocket.Conn) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.wg.Add(1)
	h.mu.Unlock()
	defer h.wg.Done()

	s := h.newSession(conn)
	h.sessions.Store(s.ID(), s)
	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	h.logger.Info("session opened", zap.String("session_id", s.ID()))

	defer func() {
		h.sessions.Delete(s.ID())
		if h.metrics != nil {
			h.metrics.DecWSConnections()
		}
		h.logger.Info("session closed", zap.String("session_id", s.ID()))
	}()

	s.run(h.ctx)
}

// Sessions describes every connected session, ordered by connect time.
// Sessions that do not answer before ctx ends are reported without views.
func (h *Handler) Sessions(ctx context.Context) []SessionInfo {
	var infos []SessionInfo
	h.sessions.Range(func(_, value interface{}) bool {
		info, err := value.(*Session).describe(ctx)
		if err != nil {
			h.logger.Debug("session did not describe its views", zap.String("session_id", info.ID), zap.Error(err))
		}
		infos = append(infos, info)
		return true
	})

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Connected.Before(infos[j].Connected)
	})
	return infos
}

// Count returns the number of connected sessions.
func (h *Handler) Count() int {
	n := 0
	h.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Close ends every session and waits for their views to be disposed.
// Connections served after Close are closed immediately.
func (h *Handler) Close() {
	h.mu.Lock()
	h.closed = true
	h.cancel()
	h.mu.Unlock()
	h.wg.Wait()
}
