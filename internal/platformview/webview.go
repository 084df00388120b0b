package platformview

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/looper"
	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// ViewType is the platform view type served by this package.
const ViewType = "plugins.flutter.io/webview"

// ChannelName returns the method channel name of view id.
func ChannelName(id int64) string {
	return ViewType + "_" + strconv.FormatInt(id, 10)
}

// Config carries the collaborators a WebView needs.
type Config struct {
	Engine    webview.Engine
	Messenger channel.Messenger
	// Poster is the UI thread script-channel messages are delivered on.
	// Defaults to looper.Inline.
	Poster  looper.Poster
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// capabilities are platform-dependent behaviors, resolved once per view.
type capabilities struct {
	// asyncCookieClear: clearing cookies completes through a callback and
	// the initial load must wait for it.
	asyncCookieClear bool
	// contentsDebugging: the debuggingEnabled setting has an effect.
	contentsDebugging bool
	// mediaGesturePolicy: autoMediaPlaybackPolicy has an effect.
	mediaGesturePolicy bool
}

func resolveCapabilities(p webview.Platform) capabilities {
	return capabilities{
		asyncCookieClear:   p.AtLeast(webview.SDKLollipop),
		contentsDebugging:  p.AtLeast(webview.SDKKitKat),
		mediaGesturePolicy: p.AtLeast(webview.SDKJellyBeanMR1),
	}
}

// WebView is one embedded browser view bound to its method channel.
type WebView struct {
	id       int64
	engine   webview.Engine
	view     webview.View
	channel  *channel.MethodChannel
	out      *outbound
	delegate *NavigationDelegate
	poster   looper.Poster
	caps     capabilities
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	channels map[string]*JavaScriptChannel
	children []webview.View
	disposed bool
}

// New creates the view, binds channel plugins.flutter.io/webview_<id> and
// applies the creation parameters. The initial URL loads once any cookie
// step has completed.
func New(cfg Config, id int64, params map[string]interface{}) (*WebView, error) {
	if cfg.Engine == nil || cfg.Messenger == nil {
		return nil, fmt.Errorf("%w: engine and messenger are required", channel.ErrIllegalArgument)
	}

	creation, err := ParseCreationParams(params)
	if err != nil {
		return nil, fmt.Errorf("invalid creation params for view %d: %w", id, err)
	}

	poster := cfg.Poster
	if poster == nil {
		poster = looper.Inline{}
	}
	logger := logging.ForView(cfg.Logger, id)

	view := cfg.Engine.NewView()
	settings := view.Settings()
	settings.SetDomStorageEnabled(true)
	settings.SetJavaScriptCanOpenWindowsAutomatically(true)
	settings.SetSupportMultipleWindows(true)

	methodChannel := channel.NewMethodChannel(cfg.Messenger, ChannelName(id))
	out := &outbound{channel: methodChannel, metrics: cfg.Metrics}

	w := &WebView{
		id:       id,
		engine:   cfg.Engine,
		view:     view,
		channel:  methodChannel,
		out:      out,
		poster:   poster,
		caps:     resolveCapabilities(cfg.Engine.Platform()),
		logger:   logger,
		metrics:  cfg.Metrics,
		channels: make(map[string]*JavaScriptChannel),
	}
	w.delegate = NewNavigationDelegate(out, logger)

	view.SetChromeClient(&chromeClient{owner: w})
	view.SetClient(w.delegate)
	methodChannel.SetMethodCallHandler(w)

	if err := w.applyCreationParams(creation); err != nil {
		w.Dispose()
		return nil, fmt.Errorf("failed to create view %d: %w", id, err)
	}

	logger.Debug("view created", zap.String("channel", methodChannel.Name()))
	return w, nil
}

func (w *WebView) applyCreationParams(p *CreationParams) error {
	if p.Settings != nil {
		if err := w.applySettings(p.Settings); err != nil {
			return err
		}
	}
	if len(p.JavascriptChannelNames) > 0 {
		w.registerJavaScriptChannels(p.JavascriptChannelNames)
	}
	if p.AutoMediaPlaybackPolicy != nil {
		w.updateAutoMediaPlaybackPolicy(*p.AutoMediaPlaybackPolicy)
	}
	if p.UserAgent != nil {
		w.updateUserAgent(*p.UserAgent)
	}

	if !p.HasCookies {
		w.loadInitialURL(p.InitialURL)
		return nil
	}
	initialURL := p.InitialURL
	w.syncCookies(p.Cookies, func() {
		w.loadInitialURL(initialURL)
	})
	return nil
}

func (w *WebView) loadInitialURL(url string) {
	if url == "" || w.disposed {
		return
	}
	w.logger.Debug("loading initial url", zap.String("url", url))
	w.view.LoadURL(url, nil)
}

// ID returns the platform view id.
func (w *WebView) ID() int64 {
	return w.id
}

// ChannelName returns the name of the view's method channel.
func (w *WebView) ChannelName() string {
	return w.channel.Name()
}

// View returns the engine view.
func (w *WebView) View() webview.View {
	return w.view
}

// Disposed reports whether Dispose has run.
func (w *WebView) Disposed() bool {
	return w.disposed
}

// OnInputConnectionLocked forwards to the view's input layer.
func (w *WebView) OnInputConnectionLocked() {
	if ic, ok := w.view.(webview.InputConnection); ok {
		ic.LockInputConnection()
	}
}

// OnInputConnectionUnlocked forwards to the view's input layer.
func (w *WebView) OnInputConnectionUnlocked() {
	if ic, ok := w.view.(webview.InputConnection); ok {
		ic.UnlockInputConnection()
	}
}

// OnFlutterViewAttached sets the container the input layer reports to.
func (w *WebView) OnFlutterViewAttached(container interface{}) {
	if ic, ok := w.view.(webview.InputConnection); ok {
		ic.SetContainerView(container)
	}
}

// OnFlutterViewDetached clears the input layer's container.
func (w *WebView) OnFlutterViewDetached() {
	if ic, ok := w.view.(webview.InputConnection); ok {
		ic.SetContainerView(nil)
	}
}

// Dispose unregisters the method handler, then tears down the view and any
// windows it opened. Later calls are no-ops.
func (w *WebView) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true

	w.channel.SetMethodCallHandler(nil)

	if ic, ok := w.view.(webview.InputConnection); ok {
		ic.Dispose()
	}
	for _, child := range w.children {
		child.Destroy()
	}
	w.children = nil
	w.view.Destroy()

	w.logger.Debug("view disposed")
}
