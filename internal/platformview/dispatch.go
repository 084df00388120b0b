package platformview

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
)

// methodHandler answers one inbound method. It either answers result itself
// (now or later) and returns nil, or returns an error and leaves result alone.
type methodHandler func(w *WebView, call channel.MethodCall, result channel.Result) error

var methods = map[string]methodHandler{
	"loadUrl":                  (*WebView).loadURL,
	"updateSettings":           (*WebView).updateSettings,
	"updateCookies":            (*WebView).updateCookies,
	"canGoBack":                (*WebView).canGoBack,
	"canGoForward":             (*WebView).canGoForward,
	"goBack":                   (*WebView).goBack,
	"goForward":                (*WebView).goForward,
	"reload":                   (*WebView).reload,
	"currentUrl":               (*WebView).currentURL,
	"evaluateJavascript":       (*WebView).evaluateJavascript,
	"addJavascriptChannels":    (*WebView).addJavascriptChannels,
	"removeJavascriptChannels": (*WebView).removeJavascriptChannels,
	"clearCache":               (*WebView).clearCache,
	"getTitle":                 (*WebView).getTitle,
	"scrollTo":                 (*WebView).scrollTo,
	"scrollBy":                 (*WebView).scrollBy,
	"getScrollX":               (*WebView).getScrollX,
	"getScrollY":               (*WebView).getScrollY,
}

// Methods returns the sorted names of every supported inbound method.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnMethodCall routes an inbound call through the method table.
func (w *WebView) OnMethodCall(call channel.MethodCall, result channel.Result) {
	handler, ok := methods[call.Method]
	if !ok {
		w.logger.Debug("method not implemented", zap.String("method", call.Method))
		monitoring.NewTimer(w.metrics, "unknown").Stop(channel.StatusNotImplemented)
		result.NotImplemented()
		return
	}

	timer := monitoring.NewTimer(w.metrics, call.Method)
	if err := handler(w, call, result); err != nil {
		w.logger.Warn("method call failed", zap.String("method", call.Method), zap.Error(err))
		timer.Stop(channel.StatusError)
		channel.Fail(result, err)
		return
	}
	timer.Stop(channel.StatusSuccess)
}

func (w *WebView) loadURL(call channel.MethodCall, result channel.Result) error {
	if call.Arguments == nil {
		return fmt.Errorf("%w: loadUrl arguments", channel.ErrNullArgument)
	}
	url, err := call.StringArg("url")
	if err != nil {
		return err
	}
	rawHeaders, _ := call.Argument("headers")
	headers, err := channel.ToStringMap(rawHeaders)
	if err != nil {
		return fmt.Errorf("headers: %w", err)
	}

	w.view.LoadURL(url, headers)
	result.Success(nil)
	return nil
}

func (w *WebView) updateSettings(call channel.MethodCall, result channel.Result) error {
	if call.Arguments == nil {
		return fmt.Errorf("%w: settings", channel.ErrNullArgument)
	}
	settings, ok := call.Arguments.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: settings must be a map, got %T", channel.ErrIllegalArgument, call.Arguments)
	}
	if err := w.applySettings(settings); err != nil {
		return err
	}
	result.Success(nil)
	return nil
}

func (w *WebView) updateCookies(call channel.MethodCall, result channel.Result) error {
	cookies, err := ParseCookies(call.Arguments)
	if err != nil {
		return err
	}
	w.setCookies(cookies)
	w.view.Reload()
	result.Success(nil)
	return nil
}

func (w *WebView) canGoBack(_ channel.MethodCall, result channel.Result) error {
	result.Success(w.view.CanGoBack())
	return nil
}

func (w *WebView) canGoForward(_ channel.MethodCall, result channel.Result) error {
	result.Success(w.view.CanGoForward())
	return nil
}

func (w *WebView) goBack(_ channel.MethodCall, result channel.Result) error {
	if w.view.CanGoBack() {
		w.view.GoBack()
	}
	result.Success(nil)
	return nil
}

func (w *WebView) goForward(_ channel.MethodCall, result channel.Result) error {
	if w.view.CanGoForward() {
		w.view.GoForward()
	}
	result.Success(nil)
	return nil
}

func (w *WebView) reload(_ channel.MethodCall, result channel.Result) error {
	w.view.Reload()
	result.Success(nil)
	return nil
}

func (w *WebView) currentURL(_ channel.MethodCall, result channel.Result) error {
	result.Success(nullable(w.view.URL()))
	return nil
}

func (w *WebView) evaluateJavascript(call channel.MethodCall, result channel.Result) error {
	if call.Arguments == nil {
		return fmt.Errorf("%w: JavaScript string cannot be null", channel.ErrNullArgument)
	}
	script, ok := call.Arguments.(string)
	if !ok {
		return fmt.Errorf("%w: JavaScript must be a string, got %T", channel.ErrIllegalArgument, call.Arguments)
	}

	w.view.EvaluateJavascript(script, func(value string) {
		result.Success(value)
	})
	return nil
}

func (w *WebView) addJavascriptChannels(call channel.MethodCall, result channel.Result) error {
	names, err := channel.ToStringList(call.Arguments)
	if err != nil {
		return fmt.Errorf("channel names: %w", err)
	}
	w.registerJavaScriptChannels(names)
	result.Success(nil)
	return nil
}

func (w *WebView) removeJavascriptChannels(call channel.MethodCall, result channel.Result) error {
	names, err := channel.ToStringList(call.Arguments)
	if err != nil {
		return fmt.Errorf("channel names: %w", err)
	}
	w.removeJavaScriptChannels(names)
	result.Success(nil)
	return nil
}

func (w *WebView) clearCache(_ channel.MethodCall, result channel.Result) error {
	w.view.ClearCache(true)
	w.engine.Storage().DeleteAllData()
	result.Success(nil)
	return nil
}

func (w *WebView) getTitle(_ channel.MethodCall, result channel.Result) error {
	result.Success(nullable(w.view.Title()))
	return nil
}

func (w *WebView) scrollTo(call channel.MethodCall, result channel.Result) error {
	x, y, err := scrollArgs(call)
	if err != nil {
		return err
	}
	w.view.ScrollTo(x, y)
	result.Success(nil)
	return nil
}

func (w *WebView) scrollBy(call channel.MethodCall, result channel.Result) error {
	x, y, err := scrollArgs(call)
	if err != nil {
		return err
	}
	w.view.ScrollBy(x, y)
	result.Success(nil)
	return nil
}

func (w *WebView) getScrollX(_ channel.MethodCall, result channel.Result) error {
	result.Success(w.view.ScrollX())
	return nil
}

func (w *WebView) getScrollY(_ channel.MethodCall, result channel.Result) error {
	result.Success(w.view.ScrollY())
	return nil
}

func scrollArgs(call channel.MethodCall) (int, int, error) {
	x, err := call.IntArg("x")
	if err != nil {
		return 0, 0, err
	}
	y, err := call.IntArg("y")
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// nullable maps the engine's "no value" empty string to null.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
