package engine

// settings is the per-view configuration. Defaults follow a freshly
// created platform web view: script off, storage off, media gated.
type settings struct {
	defaultUserAgent string

	javaScript           bool
	domStorage           bool
	canOpenWindows       bool
	multipleWindows      bool
	mediaRequiresGesture bool
	userAgent            string
}

func newSettings(defaultUserAgent string) *settings {
	return &settings{
		defaultUserAgent:     defaultUserAgent,
		mediaRequiresGesture: true,
	}
}

func (s *settings) JavaScriptEnabled() bool                { return s.javaScript }
func (s *settings) SetJavaScriptEnabled(enabled bool)      { s.javaScript = enabled }
func (s *settings) DomStorageEnabled() bool                { return s.domStorage }
func (s *settings) SetDomStorageEnabled(enabled bool)      { s.domStorage = enabled }
func (s *settings) SupportMultipleWindows() bool           { return s.multipleWindows }
func (s *settings) SetSupportMultipleWindows(enabled bool) { s.multipleWindows = enabled }
func (s *settings) MediaPlaybackRequiresUserGesture() bool { return s.mediaRequiresGesture }
func (s *settings) JavaScriptCanOpenWindowsAutomatically() bool {
	return s.canOpenWindows
}

func (s *settings) SetJavaScriptCanOpenWindowsAutomatically(enabled bool) {
	s.canOpenWindows = enabled
}

func (s *settings) SetMediaPlaybackRequiresUserGesture(required bool) {
	s.mediaRequiresGesture = required
}

// SetUserAgentString overrides the user agent. An empty string restores
// the engine default.
func (s *settings) SetUserAgentString(userAgent string) {
	s.userAgent = userAgent
}

func (s *settings) UserAgentString() string {
	if s.userAgent == "" {
		return s.defaultUserAgent
	}
	return s.userAgent
}
