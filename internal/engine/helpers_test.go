package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/looper"
	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

const waitTimeout = 5 * time.Second

type harness struct {
	t      *testing.T
	loop   *looper.Looper
	engine *Engine
}

func newHarness(t *testing.T, mutate func(*config.EngineConfig)) *harness {
	t.Helper()
	settings := config.Default().Engine
	settings.RequestsPerSecond = 0
	settings.ScriptTimeout = 500 * time.Millisecond
	settings.FetchTimeout = 2 * time.Second
	if mutate != nil {
		mutate(&settings)
	}

	loop := looper.New()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = loop.Run(context.Background())
	}()

	e := New(Config{Settings: settings, Poster: loop, Logger: zaptest.NewLogger(t)})
	t.Cleanup(func() {
		e.Close()
		loop.Quit()
		<-stopped
	})
	return &harness{t: t, loop: loop, engine: e}
}

// do runs fn on the looper and waits for it.
func (h *harness) do(fn func()) {
	h.t.Helper()
	done := make(chan struct{})
	h.loop.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
	case <-time.After(waitTimeout):
		h.t.Fatal("looper task did not run")
	}
}

// newView creates a view with script enabled and c installed as both
// clients.
func (h *harness) newView(c *recordingClient) *View {
	var v *View
	h.do(func() {
		v = h.engine.NewView().(*View)
		v.Settings().SetJavaScriptEnabled(true)
		v.Settings().SetDomStorageEnabled(true)
		v.SetClient(c)
		v.SetChromeClient(c)
	})
	return v
}

// recordingClient reports every callback on events.
type recordingClient struct {
	events chan string
	// override decides ShouldOverrideURLLoading; nil lets everything through.
	override func(*webview.ResourceRequest) bool
	// window supplies the view for new-window requests; nil refuses them.
	window func() webview.View
}

func newRecordingClient() *recordingClient {
	return &recordingClient{events: make(chan string, 128)}
}

func (c *recordingClient) ShouldOverrideURLLoading(_ webview.View, request *webview.ResourceRequest) bool {
	c.events <- "override " + request.URL
	if c.override != nil {
		return c.override(request)
	}
	return false
}

func (c *recordingClient) OnPageStarted(_ webview.View, url string) {
	c.events <- "started " + url
}

func (c *recordingClient) OnPageFinished(_ webview.View, url string) {
	c.events <- "finished " + url
}

func (c *recordingClient) OnReceivedError(_ webview.View, _ *webview.ResourceRequest, err *webview.ResourceError) {
	c.events <- fmt.Sprintf("error %s %d", err.Type, err.Code)
}

func (c *recordingClient) OnCreateWindow(_ webview.View, _, _ bool, transport *webview.WindowTransport) bool {
	c.events <- "window"
	if c.window == nil {
		return false
	}
	transport.SetView(c.window())
	transport.SendToTarget()
	return true
}

func (c *recordingClient) OnReceivedTitle(_ webview.View, title string) {
	c.events <- "title " + title
}

// waitFor collects events up to and including want.
func (c *recordingClient) waitFor(t *testing.T, want string) []string {
	t.Helper()
	var seen []string
	deadline := time.After(waitTimeout)
	for {
		select {
		case e := <-c.events:
			seen = append(seen, e)
			if e == want {
				return seen
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q, saw %v", want, seen)
			return nil
		}
	}
}

type channelFunc func(string)

func (f channelFunc) PostMessage(message string) {
	f(message)
}
