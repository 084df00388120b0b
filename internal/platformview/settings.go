package platformview

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
)

// Setting keys accepted by updateSettings and the settings creation param.
const (
	settingJsMode                   = "jsMode"
	settingHasNavigationDelegate    = "hasNavigationDelegate"
	settingDebuggingEnabled         = "debuggingEnabled"
	settingGestureNavigationEnabled = "gestureNavigationEnabled"
	settingUserAgent                = "userAgent"
)

// JavaScriptMode is the script execution mode of a view.
type JavaScriptMode int

const (
	JavaScriptDisabled     JavaScriptMode = 0
	JavaScriptUnrestricted JavaScriptMode = 1
)

// settingUpdate is one validated setting, ready to apply.
type settingUpdate func(w *WebView)

// applySettings validates every key first and then applies them in key
// order. A settings map with any bad key or value changes nothing.
func (w *WebView) applySettings(settings map[string]interface{}) error {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updates := make([]settingUpdate, 0, len(keys))
	for _, key := range keys {
		update, err := parseSetting(key, settings[key])
		if err != nil {
			return err
		}
		if update != nil {
			updates = append(updates, update)
		}
	}

	for _, update := range updates {
		update(w)
	}
	return nil
}

func parseSetting(key string, value interface{}) (settingUpdate, error) {
	switch key {
	case settingJsMode:
		mode, err := parseJavaScriptMode(value)
		if err != nil {
			return nil, err
		}
		return func(w *WebView) { w.updateJsMode(mode) }, nil

	case settingHasNavigationDelegate:
		enabled, err := boolSetting(key, value)
		if err != nil {
			return nil, err
		}
		return func(w *WebView) { w.delegate.SetEnabled(enabled) }, nil

	case settingDebuggingEnabled:
		enabled, err := boolSetting(key, value)
		if err != nil {
			return nil, err
		}
		return func(w *WebView) { w.updateDebugging(enabled) }, nil

	case settingGestureNavigationEnabled:
		// Gesture navigation has no meaning for this view.
		return nil, nil

	case settingUserAgent:
		ua, err := userAgentValue(value)
		if err != nil {
			return nil, err
		}
		return func(w *WebView) { w.updateUserAgent(ua) }, nil

	default:
		return nil, fmt.Errorf("%w: unknown WebView setting: %s", channel.ErrIllegalArgument, key)
	}
}

func parseJavaScriptMode(value interface{}) (JavaScriptMode, error) {
	n, ok := channel.ToInt(value)
	if !ok {
		return 0, fmt.Errorf("%w: jsMode must be an integer, got %T", channel.ErrIllegalArgument, value)
	}
	switch mode := JavaScriptMode(n); mode {
	case JavaScriptDisabled, JavaScriptUnrestricted:
		return mode, nil
	default:
		return 0, fmt.Errorf("%w: trying to set unknown JavaScript mode: %d", channel.ErrIllegalArgument, n)
	}
}

func boolSetting(key string, value interface{}) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a bool, got %T", channel.ErrIllegalArgument, key, value)
	}
	return b, nil
}

func (w *WebView) updateJsMode(mode JavaScriptMode) {
	settings := w.view.Settings()
	switch mode {
	case JavaScriptDisabled:
		settings.SetJavaScriptEnabled(false)
	case JavaScriptUnrestricted:
		settings.SetJavaScriptEnabled(true)
		settings.SetJavaScriptCanOpenWindowsAutomatically(true)
	}
}

func (w *WebView) updateDebugging(enabled bool) {
	if !w.caps.contentsDebugging {
		w.logger.Debug("contents debugging not supported on this platform")
		return
	}
	w.view.SetContentsDebuggingEnabled(enabled)
}

func (w *WebView) updateAutoMediaPlaybackPolicy(policy int) {
	if !w.caps.mediaGesturePolicy {
		return
	}
	// Any policy other than always-allow requires a user gesture.
	w.view.Settings().SetMediaPlaybackRequiresUserGesture(policy != autoMediaPlaybackAlwaysAllow)
}

func (w *WebView) updateUserAgent(userAgent string) {
	w.logger.Debug("user agent updated", zap.String("user_agent", userAgent))
	w.view.Settings().SetUserAgentString(userAgent)
}
