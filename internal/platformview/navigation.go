package platformview

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// NavigationDelegate is the view client. While enabled it offers main-frame
// navigations to the host, which decides whether they happen.
type NavigationDelegate struct {
	out     *outbound
	logger  *zap.Logger
	enabled bool
}

// NewNavigationDelegate creates a disabled delegate.
func NewNavigationDelegate(out *outbound, logger *zap.Logger) *NavigationDelegate {
	return &NavigationDelegate{out: out, logger: logger}
}

// SetEnabled installs or removes navigation interception.
func (d *NavigationDelegate) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// Enabled reports whether navigations are offered to the host.
func (d *NavigationDelegate) Enabled() bool {
	return d.enabled
}

// ShouldOverrideURLLoading blocks main-frame navigations while enabled and
// asks the host instead. A true reply loads the URL on view.
func (d *NavigationDelegate) ShouldOverrideURLLoading(view webview.View, request *webview.ResourceRequest) bool {
	if !d.enabled {
		return false
	}

	args := map[string]interface{}{
		"url":            request.URL,
		"isForMainFrame": request.IsForMainFrame,
	}
	if !request.IsForMainFrame {
		// Sub-frame loads cannot be deferred, so the host is only told.
		d.out.invoke(eventNavigationRequest, args, nil)
		return false
	}

	d.out.invoke(eventNavigationRequest, args, &navigationResult{
		view:    view,
		url:     request.URL,
		headers: request.Headers,
		logger:  d.logger,
	})
	return true
}

func (d *NavigationDelegate) OnPageStarted(_ webview.View, url string) {
	d.out.invoke(eventPageStarted, map[string]interface{}{"url": url}, nil)
}

func (d *NavigationDelegate) OnPageFinished(_ webview.View, url string) {
	d.out.invoke(eventPageFinished, map[string]interface{}{"url": url}, nil)
}

func (d *NavigationDelegate) OnReceivedError(_ webview.View, request *webview.ResourceRequest, err *webview.ResourceError) {
	args := map[string]interface{}{
		"errorCode":   err.Code,
		"description": err.Description,
		"errorType":   string(err.Type),
	}
	if request != nil {
		args["failingUrl"] = request.URL
	}
	d.out.invoke(eventWebResourceError, args, nil)
}

// navigationResult is the host's verdict on one blocked navigation.
type navigationResult struct {
	view    webview.View
	url     string
	headers map[string]string
	logger  *zap.Logger
}

func (r *navigationResult) Success(result interface{}) {
	allow, _ := result.(bool)
	if allow {
		r.view.LoadURL(r.url, r.headers)
	}
}

func (r *navigationResult) Error(code, message string, _ interface{}) {
	r.logger.Error("navigationRequest failed",
		zap.Error(channel.ErrIllegalState),
		zap.String("code", code),
		zap.String("message", message),
		zap.String("url", r.url))
}

func (r *navigationResult) NotImplemented() {
	r.logger.Error("navigationRequest has no handler",
		zap.Error(channel.ErrIllegalState),
		zap.String("url", r.url))
}

// chromeClient handles titles and new-window requests for its WebView.
type chromeClient struct {
	owner *WebView
}

// OnCreateWindow hands back a fresh view whose navigations are redirected to
// the owner's view.
func (c *chromeClient) OnCreateWindow(_ webview.View, isDialog, isUserGesture bool, transport *webview.WindowTransport) bool {
	w := c.owner
	child := w.engine.NewView()
	child.SetClient(&windowClient{owner: w})

	transport.SetView(child)
	transport.SendToTarget()
	w.children = append(w.children, child)

	w.logger.Debug("window created",
		zap.Bool("dialog", isDialog),
		zap.Bool("user_gesture", isUserGesture))
	return true
}

// OnReceivedTitle reports the title followed by the URL it belongs to.
func (c *chromeClient) OnReceivedTitle(view webview.View, title string) {
	c.owner.out.invoke(eventPageChangeTitle, map[string]interface{}{"title": title}, nil)
	c.owner.out.invoke(eventPageJumpURL, map[string]interface{}{"url": view.URL()}, nil)
}

// windowClient is the client of views opened by page script. It never lets
// the child navigate; each request is offered to the delegate on behalf of
// the owner's view and, unless taken over, loaded there.
type windowClient struct {
	webview.BaseClient
	owner *WebView
}

func (c *windowClient) ShouldOverrideURLLoading(_ webview.View, request *webview.ResourceRequest) bool {
	w := c.owner
	if !w.delegate.ShouldOverrideURLLoading(w.view, request) {
		w.view.LoadURL(request.URL, nil)
	}
	return true
}
