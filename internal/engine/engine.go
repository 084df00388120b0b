package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/looper"
	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// Config carries the collaborators of an Engine.
type Config struct {
	Settings config.EngineConfig
	// Poster is the UI thread every callback is delivered on.
	Poster looper.Poster
	// Fetcher may be shared between engines so they share one rate limit.
	// Defaults to a fetcher built from Settings.
	Fetcher *Fetcher
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// Engine owns views and the cookie and storage state they share.
type Engine struct {
	settings config.EngineConfig
	poster   looper.Poster
	fetcher  *Fetcher
	cookies  *CookieJar
	storage  *Storage
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an engine.
func New(cfg Config) *Engine {
	poster := cfg.Poster
	if poster == nil {
		poster = looper.Inline{}
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(cfg.Settings)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		settings: cfg.Settings,
		poster:   poster,
		fetcher:  fetcher,
		cookies:  newCookieJar(poster),
		storage:  newStorage(),
		logger:   logging.OrNop(cfg.Logger).Named("engine"),
		metrics:  cfg.Metrics,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (e *Engine) NewView() webview.View {
	return newView(e)
}

func (e *Engine) Cookies() webview.CookieManager {
	return e.cookies
}

// Jar returns the concrete cookie jar.
func (e *Engine) Jar() *CookieJar {
	return e.cookies
}

func (e *Engine) Storage() webview.WebStorage {
	return e.storage
}

// LocalStorage returns the concrete web storage.
func (e *Engine) LocalStorage() *Storage {
	return e.storage
}

func (e *Engine) Platform() webview.Platform {
	return webview.Platform{SDKInt: e.settings.SDKInt}
}

// Close cancels in-flight page loads. Their callbacks never fire.
func (e *Engine) Close() {
	e.cancel()
}
