package webview

// View is a single browser-engine view.
type View interface {
	LoadURL(url string, headers map[string]string)
	URL() string
	Title() string

	CanGoBack() bool
	CanGoForward() bool
	GoBack()
	GoForward()
	Reload()

	// EvaluateJavascript runs script in the current page and delivers the
	// JSON-encoded result to callback exactly once.
	EvaluateJavascript(script string, callback func(value string))
	AddJavascriptInterface(name string, channel ScriptChannel)
	RemoveJavascriptInterface(name string)

	ClearCache(includeDiskFiles bool)

	ScrollTo(x, y int)
	ScrollBy(x, y int)
	ScrollX() int
	ScrollY() int

	Settings() Settings
	SetClient(client Client)
	SetChromeClient(client ChromeClient)
	SetContentsDebuggingEnabled(enabled bool)

	Destroy()
}

// InputConnection is the input-focus layer some views carry.
type InputConnection interface {
	LockInputConnection()
	UnlockInputConnection()
	SetContainerView(container interface{})
	Dispose()
}

// Settings holds per-view engine switches.
type Settings interface {
	JavaScriptEnabled() bool
	SetJavaScriptEnabled(enabled bool)
	SetDomStorageEnabled(enabled bool)
	DomStorageEnabled() bool
	SetJavaScriptCanOpenWindowsAutomatically(enabled bool)
	JavaScriptCanOpenWindowsAutomatically() bool
	SetSupportMultipleWindows(enabled bool)
	SupportMultipleWindows() bool
	SetMediaPlaybackRequiresUserGesture(required bool)
	MediaPlaybackRequiresUserGesture() bool
	SetUserAgentString(userAgent string)
	UserAgentString() string
}

// ScriptChannel receives messages posted by page script.
type ScriptChannel interface {
	PostMessage(message string)
}
