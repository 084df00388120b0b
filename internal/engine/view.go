package engine

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

const blankURL = "about:blank"

type loadKind int

const (
	loadNew loadKind = iota
	loadReload
	loadHistory
)

// View is a headless browser view. All methods must be called on the
// engine's looper.
type View struct {
	engine   *Engine
	id       string
	settings *settings
	logger   *zap.Logger

	client webview.Client
	chrome webview.ChromeClient

	history []string
	index   int
	cache   map[string]*Page
	doc     *document

	// generation identifies the latest navigation; older results are dropped.
	generation uint64

	scrollX, scrollY int
	interfaces       map[string]webview.ScriptChannel
	runtime          *scriptRuntime
	debugging        bool
	destroyed        bool
}

func newView(e *Engine) *View {
	id := uuid.NewString()
	v := &View{
		engine:     e,
		id:         id,
		settings:   newSettings(e.settings.UserAgent),
		logger:     e.logger.With(zap.String("engine_view", id)),
		client:     webview.BaseClient{},
		index:      -1,
		cache:      make(map[string]*Page),
		doc:        &document{url: ""},
		interfaces: make(map[string]webview.ScriptChannel),
	}
	v.runtime = newScriptRuntime(v)
	return v
}

// ID returns the engine-assigned view id.
func (v *View) ID() string {
	return v.id
}

func (v *View) LoadURL(rawURL string, headers map[string]string) {
	v.navigate(rawURL, headers, loadNew, 0)
}

func (v *View) URL() string {
	if v.index < 0 {
		return ""
	}
	return v.history[v.index]
}

func (v *View) Title() string {
	return v.doc.title
}

func (v *View) CanGoBack() bool {
	return v.index > 0
}

func (v *View) CanGoForward() bool {
	return v.index >= 0 && v.index < len(v.history)-1
}

func (v *View) GoBack() {
	if v.CanGoBack() {
		v.navigate(v.history[v.index-1], nil, loadHistory, v.index-1)
	}
}

func (v *View) GoForward() {
	if v.CanGoForward() {
		v.navigate(v.history[v.index+1], nil, loadHistory, v.index+1)
	}
}

func (v *View) Reload() {
	if v.index >= 0 {
		v.navigate(v.URL(), nil, loadReload, v.index)
	}
}

// EvaluateJavascript runs script against the current page. The result is
// "null" when script is disabled or the script fails.
func (v *View) EvaluateJavascript(script string, callback func(value string)) {
	result := "null"
	if !v.destroyed && v.settings.javaScript {
		value, err := v.runtime.evaluate(script)
		if err != nil {
			v.logger.Debug("script evaluation failed", zap.Error(err))
		} else {
			result = value
		}
	}
	if callback == nil {
		return
	}
	v.engine.poster.Post(func() {
		callback(result)
	})
}

func (v *View) AddJavascriptInterface(name string, channel webview.ScriptChannel) {
	v.interfaces[name] = channel
	v.runtime.bindChannel(name, channel)
}

func (v *View) RemoveJavascriptInterface(name string) {
	delete(v.interfaces, name)
	v.runtime.unbind(name)
}

// ClearCache drops cached pages so history navigation refetches them.
func (v *View) ClearCache(includeDiskFiles bool) {
	v.cache = make(map[string]*Page)
	v.logger.Debug("cache cleared", zap.Bool("include_disk", includeDiskFiles))
}

func (v *View) ScrollTo(x, y int) {
	v.scrollX, v.scrollY = clampScroll(x), clampScroll(y)
}

func (v *View) ScrollBy(x, y int) {
	v.ScrollTo(v.scrollX+x, v.scrollY+y)
}

func (v *View) ScrollX() int {
	return v.scrollX
}

func (v *View) ScrollY() int {
	return v.scrollY
}

func clampScroll(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (v *View) Settings() webview.Settings {
	return v.settings
}

func (v *View) SetClient(client webview.Client) {
	if client == nil {
		client = webview.BaseClient{}
	}
	v.client = client
}

func (v *View) SetChromeClient(client webview.ChromeClient) {
	v.chrome = client
}

// SetContentsDebuggingEnabled raises page console output to info level.
func (v *View) SetContentsDebuggingEnabled(enabled bool) {
	v.debugging = enabled
}

// Destroy stops the view. Pending loads are dropped.
func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.generation++
	v.runtime.interrupt()
	v.interfaces = make(map[string]webview.ScriptChannel)
	v.logger.Debug("view destroyed")
}

// navigate starts loading target. The result is committed on the looper.
func (v *View) navigate(target string, headers map[string]string, kind loadKind, index int) {
	if v.destroyed {
		return
	}
	v.generation++
	gen := v.generation
	request := &webview.ResourceRequest{URL: target, Method: "GET", Headers: headers, IsForMainFrame: true}

	u, err := url.Parse(target)
	switch {
	case err != nil || !u.IsAbs():
		v.fail(request, errBadURL)
		return
	case target == blankURL:
		v.client.OnPageStarted(v, target)
		page := &Page{URL: blankURL, Status: 200, MediaType: "text/html"}
		v.engine.poster.Post(func() { v.commit(gen, request, page, kind, index) })
		return
	case u.Scheme != "http" && u.Scheme != "https":
		v.fail(request, errUnsupportedScheme)
		return
	}

	v.client.OnPageStarted(v, target)

	if kind == loadHistory {
		if page, ok := v.cache[target]; ok {
			v.engine.poster.Post(func() { v.commit(gen, request, page, kind, index) })
			return
		}
	}

	reqHeaders := v.requestHeaders(target, headers)
	fetcher := v.engine.fetcher
	ctx := v.engine.ctx
	timeout := v.engine.settings.FetchTimeout
	go func() {
		fetchCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		page, err := fetcher.Fetch(fetchCtx, target, reqHeaders)
		if ctx.Err() != nil {
			return
		}
		v.engine.poster.Post(func() {
			if err != nil {
				if gen == v.generation && !v.destroyed {
					v.fail(request, err)
				}
				return
			}
			v.commit(gen, request, page, kind, index)
		})
	}()
}

func (v *View) requestHeaders(target string, extra map[string]string) map[string]string {
	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      v.settings.UserAgentString(),
	}
	if cookie := v.engine.cookies.Cookie(target); cookie != "" {
		headers["Cookie"] = cookie
	}
	if current := v.URL(); current != "" && current != blankURL {
		headers["Referer"] = current
	}
	for k, val := range extra {
		headers[k] = val
	}
	return headers
}

// fail reports a load that produced no page.
func (v *View) fail(request *webview.ResourceRequest, err error) {
	v.logger.Debug("page load failed", zap.String("url", request.URL), zap.Error(err))
	if v.engine.metrics != nil {
		v.engine.metrics.RecordPageLoad("error")
	}
	v.client.OnReceivedError(v, request, resourceError(err))
	v.client.OnPageFinished(v, request.URL)
}

// commit makes page the current document.
func (v *View) commit(gen uint64, request *webview.ResourceRequest, page *Page, kind loadKind, index int) {
	if v.destroyed || gen != v.generation {
		return
	}

	v.engine.cookies.store(page.URL, page.SetCookies)
	v.cache[page.URL] = page

	switch kind {
	case loadNew:
		v.history = append(v.history[:v.index+1], page.URL)
		v.index = len(v.history) - 1
	case loadReload, loadHistory:
		v.index = index
		v.history[index] = page.URL
	}

	v.doc = parseDocument(page)
	v.scrollX, v.scrollY = 0, 0
	v.runtime = newScriptRuntime(v)
	for name, channel := range v.interfaces {
		v.runtime.bindChannel(name, channel)
	}

	if page.Failed() {
		v.client.OnReceivedError(v, request, httpError(page.Status))
	}
	if v.engine.metrics != nil {
		status := "success"
		if page.Failed() {
			status = "http_error"
		}
		v.engine.metrics.RecordPageLoad(status)
	}

	if v.chrome != nil {
		v.chrome.OnReceivedTitle(v, v.doc.title)
	}
	if v.settings.javaScript {
		for _, script := range v.doc.scripts {
			if gen != v.generation {
				break
			}
			if _, err := v.runtime.run(script); err != nil {
				v.logger.Debug("page script failed", zap.String("url", page.URL), zap.Error(err))
			}
		}
	}
	v.client.OnPageFinished(v, page.URL)
}

// setTitle is document.title assignment from page script.
func (v *View) setTitle(title string) {
	v.doc.title = title
	if v.chrome != nil {
		v.chrome.OnReceivedTitle(v, title)
	}
}

// resolve makes target absolute against the current page.
func (v *View) resolve(target string) string {
	base, err := url.Parse(v.URL())
	if err != nil || !base.IsAbs() {
		return target
	}
	ref, err := url.Parse(target)
	if err != nil {
		return target
	}
	return base.ResolveReference(ref).String()
}

// navigateFromScript is a page-initiated navigation. The client may take
// it over.
func (v *View) navigateFromScript(target string) {
	target = v.resolve(target)
	request := &webview.ResourceRequest{URL: target, Method: "GET", IsForMainFrame: true}
	if v.client.ShouldOverrideURLLoading(v, request) {
		return
	}
	v.navigate(target, nil, loadNew, 0)
}

// openWindow is window.open. Without multiple-window support the current
// view navigates instead.
func (v *View) openWindow(target string, userGesture bool) {
	if !v.settings.canOpenWindows && !userGesture {
		v.logger.Debug("popup blocked", zap.String("url", target))
		return
	}
	if !v.settings.multipleWindows || v.chrome == nil {
		v.navigateFromScript(target)
		return
	}

	target = v.resolve(target)
	transport := &webview.WindowTransport{}
	if !v.chrome.OnCreateWindow(v, false, userGesture, transport) || !transport.Sent() || transport.View() == nil {
		return
	}
	if child, ok := transport.View().(*View); ok {
		child.navigateFromScript(target)
		return
	}
	transport.View().LoadURL(target, nil)
}
