package webviewtest

import "sync"

// Settings is a fake webview.Settings.
type Settings struct {
	mu                   sync.Mutex
	javaScript           bool
	domStorage           bool
	canOpenWindows       bool
	multipleWindows      bool
	mediaRequiresGesture bool
	mediaPolicySet       bool
	userAgent            string
	writes               int
}

func (s *Settings) touch() {
	s.writes++
}

// Writes returns how many setters have been called.
func (s *Settings) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Settings) JavaScriptEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.javaScript
}

func (s *Settings) SetJavaScriptEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.javaScript = enabled
}

func (s *Settings) SetDomStorageEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.domStorage = enabled
}

func (s *Settings) DomStorageEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.domStorage
}

func (s *Settings) SetJavaScriptCanOpenWindowsAutomatically(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.canOpenWindows = enabled
}

func (s *Settings) JavaScriptCanOpenWindowsAutomatically() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canOpenWindows
}

func (s *Settings) SetSupportMultipleWindows(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.multipleWindows = enabled
}

func (s *Settings) SupportMultipleWindows() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.multipleWindows
}

func (s *Settings) SetMediaPlaybackRequiresUserGesture(required bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.mediaRequiresGesture = required
	s.mediaPolicySet = true
}

func (s *Settings) MediaPlaybackRequiresUserGesture() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediaRequiresGesture
}

// MediaPolicySet reports whether SetMediaPlaybackRequiresUserGesture was
// ever called.
func (s *Settings) MediaPolicySet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediaPolicySet
}

func (s *Settings) SetUserAgentString(userAgent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.userAgent = userAgent
}

func (s *Settings) UserAgentString() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userAgent
}
