package webviewtest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// View is a fake webview.View that also implements webview.InputConnection.
// Journal entries are prefixed with "view<N> ".
type View struct {
	journal  *Journal
	name     string
	settings *Settings

	mu          sync.Mutex
	url         string
	title       string
	back        []string
	forward     []string
	scrollX     int
	scrollY     int
	interfaces  map[string]webview.ScriptChannel
	client      webview.Client
	chrome      webview.ChromeClient
	debugging   bool
	destroyed   bool
	locked      bool
	container   interface{}
	inputClosed bool
	lastHeaders map[string]string

	// EvalResult is returned by EvaluateJavascript when DeferEval is false.
	EvalResult string
	// DeferEval holds evaluation callbacks until FireEval.
	DeferEval bool
	evals     []func(string)
}

func newView(journal *Journal, index int) *View {
	return &View{
		journal:    journal,
		name:       fmt.Sprintf("view%d", index),
		settings:   &Settings{},
		interfaces: make(map[string]webview.ScriptChannel),
		EvalResult: "null",
	}
}

func (v *View) record(format string, args ...interface{}) {
	v.journal.record(v.name+" "+format, args...)
}

// Name returns the journal prefix of the view.
func (v *View) Name() string {
	return v.name
}

func (v *View) LoadURL(url string, headers map[string]string) {
	v.mu.Lock()
	if v.url != "" {
		v.back = append(v.back, v.url)
	}
	v.forward = nil
	v.url = url
	v.lastHeaders = headers
	v.mu.Unlock()
	v.record("loadUrl %s", url)
}

// LastHeaders returns the headers of the most recent LoadURL.
func (v *View) LastHeaders() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastHeaders
}

func (v *View) URL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

func (v *View) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

// SetTitle sets the title without notifying the chrome client.
func (v *View) SetTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.title = title
}

func (v *View) CanGoBack() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.back) > 0
}

func (v *View) CanGoForward() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.forward) > 0
}

func (v *View) GoBack() {
	v.mu.Lock()
	if len(v.back) == 0 {
		v.mu.Unlock()
		return
	}
	v.forward = append(v.forward, v.url)
	v.url = v.back[len(v.back)-1]
	v.back = v.back[:len(v.back)-1]
	v.mu.Unlock()
	v.record("goBack")
}

func (v *View) GoForward() {
	v.mu.Lock()
	if len(v.forward) == 0 {
		v.mu.Unlock()
		return
	}
	v.back = append(v.back, v.url)
	v.url = v.forward[len(v.forward)-1]
	v.forward = v.forward[:len(v.forward)-1]
	v.mu.Unlock()
	v.record("goForward")
}

func (v *View) Reload() {
	v.record("reload")
}

func (v *View) EvaluateJavascript(script string, callback func(value string)) {
	v.record("evaluateJavascript %s", script)
	v.mu.Lock()
	if v.DeferEval {
		v.evals = append(v.evals, callback)
		v.mu.Unlock()
		return
	}
	result := v.EvalResult
	v.mu.Unlock()
	callback(result)
}

// FireEval completes the oldest deferred evaluation with value.
func (v *View) FireEval(value string) {
	v.mu.Lock()
	if len(v.evals) == 0 {
		v.mu.Unlock()
		return
	}
	cb := v.evals[0]
	v.evals = v.evals[1:]
	v.mu.Unlock()
	cb(value)
}

func (v *View) AddJavascriptInterface(name string, channel webview.ScriptChannel) {
	v.mu.Lock()
	v.interfaces[name] = channel
	v.mu.Unlock()
	v.record("addJavascriptInterface %s", name)
}

func (v *View) RemoveJavascriptInterface(name string) {
	v.mu.Lock()
	delete(v.interfaces, name)
	v.mu.Unlock()
	v.record("removeJavascriptInterface %s", name)
}

// Interface returns the script channel registered as name.
func (v *View) Interface(name string) (webview.ScriptChannel, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	ch, ok := v.interfaces[name]
	return ch, ok
}

// Interfaces returns the registered interface names in sorted order.
func (v *View) Interfaces() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	names := make([]string, 0, len(v.interfaces))
	for name := range v.interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v *View) ClearCache(includeDiskFiles bool) {
	v.record("clearCache %t", includeDiskFiles)
}

func (v *View) ScrollTo(x, y int) {
	v.mu.Lock()
	v.scrollX, v.scrollY = x, y
	v.mu.Unlock()
	v.record("scrollTo %d %d", x, y)
}

func (v *View) ScrollBy(x, y int) {
	v.mu.Lock()
	v.scrollX += x
	v.scrollY += y
	v.mu.Unlock()
	v.record("scrollBy %d %d", x, y)
}

func (v *View) ScrollX() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollX
}

func (v *View) ScrollY() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollY
}

func (v *View) Settings() webview.Settings {
	return v.settings
}

// FakeSettings returns the concrete settings fake.
func (v *View) FakeSettings() *Settings {
	return v.settings
}

func (v *View) SetClient(client webview.Client) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.client = client
}

// Client returns the installed client.
func (v *View) Client() webview.Client {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.client
}

func (v *View) SetChromeClient(client webview.ChromeClient) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chrome = client
}

func (v *View) SetContentsDebuggingEnabled(enabled bool) {
	v.mu.Lock()
	v.debugging = enabled
	v.mu.Unlock()
	v.record("setContentsDebuggingEnabled %t", enabled)
}

// DebuggingEnabled reports the last SetContentsDebuggingEnabled value.
func (v *View) DebuggingEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.debugging
}

func (v *View) Destroy() {
	v.mu.Lock()
	v.destroyed = true
	v.mu.Unlock()
	v.record("destroy")
}

// Destroyed reports whether Destroy was called.
func (v *View) Destroyed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.destroyed
}

func (v *View) LockInputConnection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.locked = true
}

func (v *View) UnlockInputConnection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.locked = false
}

func (v *View) SetContainerView(container interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.container = container
}

func (v *View) Dispose() {
	v.mu.Lock()
	v.inputClosed = true
	v.mu.Unlock()
	v.record("disposeInputConnection")
}

// InputLocked reports whether the input connection is locked.
func (v *View) InputLocked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.locked
}

// Container returns the container view set on the input connection.
func (v *View) Container() interface{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.container
}

// Navigate simulates a page-initiated navigation: the client is asked first
// and the view loads the URL unless it is overridden. It reports whether
// the view loaded it.
func (v *View) Navigate(url string, mainFrame bool) bool {
	request := &webview.ResourceRequest{URL: url, Method: "GET", IsForMainFrame: mainFrame, HasGesture: true}
	if client := v.Client(); client != nil && client.ShouldOverrideURLLoading(v, request) {
		return false
	}
	if mainFrame {
		v.LoadURL(url, nil)
	}
	return true
}

// OpenWindow simulates window.open and returns the transport the chrome
// client filled in.
func (v *View) OpenWindow(userGesture bool) (*webview.WindowTransport, bool) {
	v.mu.Lock()
	chrome := v.chrome
	v.mu.Unlock()
	transport := &webview.WindowTransport{}
	if chrome == nil {
		return transport, false
	}
	return transport, chrome.OnCreateWindow(v, false, userGesture, transport)
}

// ReceiveTitle sets the title and notifies the chrome client.
func (v *View) ReceiveTitle(title string) {
	v.SetTitle(title)
	v.mu.Lock()
	chrome := v.chrome
	v.mu.Unlock()
	if chrome != nil {
		chrome.OnReceivedTitle(v, title)
	}
}
