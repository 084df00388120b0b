package webviewtest

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// Engine is a fake webview.Engine.
type Engine struct {
	Journal *Journal
	SDK     int

	mu      sync.Mutex
	views   []*View
	cookies *CookieManager
	storage *Storage
}

// NewEngine creates a fake engine reporting sdk as its platform level.
func NewEngine(sdk int) *Engine {
	j := &Journal{}
	return &Engine{
		Journal: j,
		SDK:     sdk,
		cookies: &CookieManager{journal: j, jar: make(map[string][]string)},
		storage: &Storage{journal: j},
	}
}

func (e *Engine) NewView() webview.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := newView(e.Journal, len(e.views))
	e.views = append(e.views, v)
	return v
}

func (e *Engine) Cookies() webview.CookieManager {
	return e.cookies
}

// CookieManager returns the concrete fake cookie manager.
func (e *Engine) CookieManager() *CookieManager {
	return e.cookies
}

func (e *Engine) Storage() webview.WebStorage {
	return e.storage
}

func (e *Engine) Platform() webview.Platform {
	return webview.Platform{SDKInt: e.SDK}
}

// Views returns every view created so far, in creation order.
func (e *Engine) Views() []*View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*View(nil), e.views...)
}

// View returns the i-th created view.
func (e *Engine) View(i int) *View {
	return e.Views()[i]
}

// CookieManager is a fake webview.CookieManager. The async clear callback
// is held until FireClear is called.
type CookieManager struct {
	journal *Journal

	mu      sync.Mutex
	jar     map[string][]string
	pending []func(bool)
	flushes int
}

func (c *CookieManager) SetCookie(url, value string) {
	c.mu.Lock()
	c.jar[url] = append(c.jar[url], value)
	c.mu.Unlock()
	c.journal.record("setCookie %s %s", url, value)
}

func (c *CookieManager) Cookie(url string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := ""
	for i, v := range c.jar[url] {
		if i > 0 {
			out += "; "
		}
		out += v
	}
	return out
}

func (c *CookieManager) RemoveAllCookies(callback func(removed bool)) {
	c.mu.Lock()
	c.pending = append(c.pending, callback)
	c.mu.Unlock()
	c.journal.record("removeAllCookies")
}

func (c *CookieManager) RemoveAllCookiesSync() {
	c.mu.Lock()
	c.jar = make(map[string][]string)
	c.mu.Unlock()
	c.journal.record("removeAllCookiesSync")
}

func (c *CookieManager) Flush() {
	c.mu.Lock()
	c.flushes++
	c.mu.Unlock()
	c.journal.record("flush")
}

// PendingClears returns how many async clears are waiting for FireClear.
func (c *CookieManager) PendingClears() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// FireClear completes the oldest async clear.
func (c *CookieManager) FireClear(removed bool) {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return
	}
	cb := c.pending[0]
	c.pending = c.pending[1:]
	c.jar = make(map[string][]string)
	c.mu.Unlock()
	c.journal.record("cookiesCleared")
	cb(removed)
}

// Flushes returns how many times Flush was called.
func (c *CookieManager) Flushes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}

// Storage is a fake webview.WebStorage.
type Storage struct {
	journal *Journal
}

func (s *Storage) DeleteAllData() {
	s.journal.record("deleteAllData")
}
