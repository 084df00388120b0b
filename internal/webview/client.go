package webview

// ResourceRequest describes a navigation the engine is about to perform.
type ResourceRequest struct {
	URL            string
	Method         string
	Headers        map[string]string
	IsForMainFrame bool
	HasGesture     bool
}

// ErrorType classifies a ResourceError.
type ErrorType string

const (
	ErrorUnknown           ErrorType = "unknown"
	ErrorHostLookup        ErrorType = "hostLookup"
	ErrorConnect           ErrorType = "connect"
	ErrorTimeout           ErrorType = "timeout"
	ErrorUnsupportedScheme ErrorType = "unsupportedScheme"
	ErrorBadURL            ErrorType = "badUrl"
	ErrorHTTP              ErrorType = "httpStatus"
	ErrorTooManyRequests   ErrorType = "tooManyRequests"
)

// ResourceError reports a failed page load.
type ResourceError struct {
	Code        int
	Description string
	Type        ErrorType
}

// Client observes and intercepts navigation.
type Client interface {
	// ShouldOverrideURLLoading returns true when the client takes over the
	// navigation and the view must not perform it.
	ShouldOverrideURLLoading(view View, request *ResourceRequest) bool
	OnPageStarted(view View, url string)
	OnPageFinished(view View, url string)
	OnReceivedError(view View, request *ResourceRequest, err *ResourceError)
}

// ChromeClient observes titles and handles new-window requests.
type ChromeClient interface {
	// OnCreateWindow returns true when it supplied a view through transport.
	OnCreateWindow(view View, isDialog, isUserGesture bool, transport *WindowTransport) bool
	OnReceivedTitle(view View, title string)
}

// WindowTransport hands a newly created view back to the engine.
type WindowTransport struct {
	view View
	sent bool
}

// SetView sets the view that will host the new window.
func (t *WindowTransport) SetView(view View) {
	t.view = view
}

// View returns the view supplied by the chrome client.
func (t *WindowTransport) View() View {
	return t.view
}

// SendToTarget marks the transport as delivered.
func (t *WindowTransport) SendToTarget() {
	t.sent = true
}

// Sent reports whether SendToTarget was called.
func (t *WindowTransport) Sent() bool {
	return t.sent
}

// BaseClient is a Client that lets every navigation through and ignores
// lifecycle events.
type BaseClient struct{}

func (BaseClient) ShouldOverrideURLLoading(View, *ResourceRequest) bool   { return false }
func (BaseClient) OnPageStarted(View, string)                             {}
func (BaseClient) OnPageFinished(View, string)                            {}
func (BaseClient) OnReceivedError(View, *ResourceRequest, *ResourceError) {}
