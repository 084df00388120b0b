package platformview

import (
	"sort"

	"github.com/GriffinCanCode/AgentOS/webview/internal/looper"
)

// JavaScriptChannel forwards messages posted by page script to the host as
// javascriptChannelMessage events.
type JavaScriptChannel struct {
	name   string
	out    *outbound
	poster looper.Poster
}

// Name returns the name the channel is exposed under in page script.
func (c *JavaScriptChannel) Name() string {
	return c.name
}

// PostMessage is called by page script. Delivery happens on the UI thread.
func (c *JavaScriptChannel) PostMessage(message string) {
	c.poster.Post(func() {
		c.out.invoke(eventChannelMessage, map[string]interface{}{
			"channel": c.name,
			"message": message,
		}, nil)
	})
}

func (w *WebView) registerJavaScriptChannels(names []string) {
	for _, name := range names {
		ch := &JavaScriptChannel{name: name, out: w.out, poster: w.poster}
		w.channels[name] = ch
		w.view.AddJavascriptInterface(name, ch)
	}
}

func (w *WebView) removeJavaScriptChannels(names []string) {
	for _, name := range names {
		if _, ok := w.channels[name]; !ok {
			continue
		}
		delete(w.channels, name)
		w.view.RemoveJavascriptInterface(name)
	}
}

// Channels returns the registered script channel names in sorted order.
func (w *WebView) Channels() []string {
	names := make([]string, 0, len(w.channels))
	for name := range w.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
