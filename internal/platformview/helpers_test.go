package platformview

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel/channeltest"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
	"github.com/GriffinCanCode/AgentOS/webview/internal/webview/webviewtest"
)

const testViewID = 7

var testChannel = ChannelName(testViewID)

type fixture struct {
	engine    *webviewtest.Engine
	messenger *channeltest.Messenger
	metrics   *monitoring.Metrics
	cfg       Config
}

func newFixture(t *testing.T, sdk int) *fixture {
	t.Helper()
	engine := webviewtest.NewEngine(sdk)
	messenger := channeltest.NewMessenger()
	metrics := monitoring.NewMetrics()
	return &fixture{
		engine:    engine,
		messenger: messenger,
		metrics:   metrics,
		cfg: Config{
			Engine:    engine,
			Messenger: messenger,
			Logger:    zaptest.NewLogger(t),
			Metrics:   metrics,
		},
	}
}

func (f *fixture) create(t *testing.T, params map[string]interface{}) (*WebView, *webviewtest.View) {
	t.Helper()
	w, err := New(f.cfg, testViewID, params)
	require.NoError(t, err)
	return w, f.engine.View(0)
}

func (f *fixture) call(method string, args interface{}) *channeltest.Recorder {
	return f.messenger.Call(testChannel, method, args)
}

// events returns the outbound invocations named method.
func (f *fixture) events(method string) []channeltest.Invocation {
	var out []channeltest.Invocation
	for _, inv := range f.messenger.Invocations() {
		if inv.Call.Method == method {
			out = append(out, inv)
		}
	}
	return out
}

func eventArgs(t *testing.T, inv channeltest.Invocation) map[string]interface{} {
	t.Helper()
	args, ok := inv.Call.Arguments.(map[string]interface{})
	require.True(t, ok, "event arguments must be a map, got %T", inv.Call.Arguments)
	return args
}

func cookieList(records ...map[string]interface{}) []interface{} {
	out := make([]interface{}, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	return out
}

func cookieRecord(domain, path, name, value string) map[string]interface{} {
	return map[string]interface{}{
		"domain": domain,
		"path":   path,
		"name":   name,
		"value":  value,
	}
}

// postRecorder queues posted tasks until run is called.
type postRecorder struct {
	tasks []func()
}

func (p *postRecorder) Post(task func()) {
	p.tasks = append(p.tasks, task)
}

func (p *postRecorder) run() {
	tasks := p.tasks
	p.tasks = nil
	for _, task := range tasks {
		task()
	}
}

var _ webview.View = (*webviewtest.View)(nil)
