package webview

// SDK levels that gate engine behavior.
const (
	SDKJellyBeanMR1 = 17
	SDKKitKat       = 19
	SDKLollipop     = 21
)

// Platform describes the engine's capability level.
type Platform struct {
	SDKInt int
}

// AtLeast reports whether the platform is at or above level.
func (p Platform) AtLeast(level int) bool {
	return p.SDKInt >= level
}

// CookieManager is the cookie store shared by all views of an engine.
type CookieManager interface {
	// SetCookie stores one cookie string for url.
	SetCookie(url, value string)
	// Cookie returns the Cookie header value for url.
	Cookie(url string) string
	// RemoveAllCookies clears the store asynchronously and then calls
	// callback once with whether anything was removed.
	RemoveAllCookies(callback func(removed bool))
	// RemoveAllCookiesSync clears the store before returning.
	RemoveAllCookiesSync()
	// Flush makes previously set cookies durable.
	Flush()
}

// WebStorage holds per-origin DOM storage.
type WebStorage interface {
	DeleteAllData()
}

// Engine creates views and owns the shared stores.
type Engine interface {
	NewView() View
	Cookies() CookieManager
	Storage() WebStorage
	Platform() Platform
}
