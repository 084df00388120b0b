package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/webview/internal/platformview"
)

const viewID = 1

type harness struct {
	handler *Handler
	metrics *monitoring.Metrics
	url     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settings := config.Default().Engine
	settings.FetchTimeout = 5 * time.Second
	metrics := monitoring.NewMetrics()
	handler := NewHandler(Options{
		Settings: settings,
		Logger:   zaptest.NewLogger(t),
		Metrics:  metrics,
	})

	router := gin.New()
	router.GET("/stream", handler.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		handler.Close()
		srv.Close()
	})

	return &harness{
		handler: handler,
		metrics: metrics,
		url:     "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream",
	}
}

type client struct {
	t     *testing.T
	conn  *websocket.Conn
	codec *channel.Codec
	// backlog holds frames read but not yet matched, in arrival order.
	backlog []*channel.Envelope
}

func (h *harness) dial(t *testing.T) *client {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(h.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &client{t: t, conn: conn, codec: channel.NewCodec()}
}

func (c *client) send(env *channel.Envelope) {
	c.t.Helper()
	data, err := c.codec.Encode(env)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, data))
}

func (c *client) call(id int64, name, method string, args interface{}) {
	c.t.Helper()
	c.send(&channel.Envelope{Type: channel.EnvelopeCall, ID: id, Channel: name, Method: method, Args: args})
}

// expect returns the first frame match accepts, reading more as needed.
func (c *client) expect(match func(*channel.Envelope) bool) *channel.Envelope {
	c.t.Helper()
	for i, env := range c.backlog {
		if match(env) {
			c.backlog = append(c.backlog[:i], c.backlog[i+1:]...)
			return env
		}
	}
	for {
		require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, data, err := c.conn.ReadMessage()
		require.NoError(c.t, err)
		env, err := c.codec.Decode(data)
		require.NoError(c.t, err)
		if match(env) {
			return env
		}
		c.backlog = append(c.backlog, env)
	}
}

func (c *client) reply(id int64) *channel.Envelope {
	c.t.Helper()
	return c.expect(func(env *channel.Envelope) bool {
		return env.Type == channel.EnvelopeReply && env.ID == id
	})
}

func (c *client) event(method string) *channel.Envelope {
	c.t.Helper()
	return c.expect(func(env *channel.Envelope) bool {
		return env.Type == channel.EnvelopeCall && env.Method == method
	})
}

func (c *client) create(id int64, params map[string]interface{}) *channel.Envelope {
	c.t.Helper()
	c.call(100+id, platformview.FactoryChannel, "create", map[string]interface{}{
		"id":       id,
		"viewType": platformview.ViewType,
		"params":   params,
	})
	return c.reply(100 + id)
}

func pageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Home</title></head><body>home</body></html>`))
	})
	mux.HandleFunc("/second", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Second</title></head><body>second</body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateAndCallView(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)

	created := c.create(viewID, map[string]interface{}{})
	assert.Equal(t, channel.StatusSuccess, created.Status)
	assert.EqualValues(t, viewID, created.Result)

	c.call(2, platformview.ChannelName(viewID), "currentUrl", nil)
	got := c.reply(2)
	assert.Equal(t, channel.StatusSuccess, got.Status)
	assert.Nil(t, got.Result)
	assert.Equal(t, platformview.ChannelName(viewID), got.Channel)

	c.call(3, platformview.ChannelName(viewID), "noSuchMethod", nil)
	assert.Equal(t, channel.StatusNotImplemented, c.reply(3).Status)
}

func TestErrorsCarryCodes(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)

	c.call(1, platformview.FactoryChannel, "create", map[string]interface{}{
		"id":       viewID,
		"viewType": "some.other/view",
	})
	got := c.reply(1)
	assert.Equal(t, channel.StatusError, got.Status)
	assert.Equal(t, channel.CodeIllegalArgument, got.Code)
	assert.Contains(t, got.Message, "some.other/view")

	c.create(viewID, nil)
	dup := c.create(viewID, nil)
	assert.Equal(t, channel.StatusError, dup.Status)
	assert.Equal(t, channel.CodeIllegalState, dup.Code)
}

func TestUnknownChannelIsNotImplemented(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)

	c.call(1, "plugins.flutter.io/webview_99", "reload", nil)
	assert.Equal(t, channel.StatusNotImplemented, c.reply(1).Status)
}

func TestMalformedFramesAreDropped(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"call","id":1}`)))

	c.create(viewID, nil)
	assert.Equal(t, 1, h.handler.Count())
}

func TestPageEventsReachClient(t *testing.T) {
	srv := pageServer(t)
	h := newHarness(t)
	c := h.dial(t)

	c.create(viewID, map[string]interface{}{"initialUrl": srv.URL + "/"})

	started := c.event("onPageStarted")
	assert.Equal(t, platformview.ChannelName(viewID), started.Channel)
	assert.Zero(t, started.ID)
	assert.Equal(t, map[string]interface{}{"url": srv.URL + "/"}, started.Args)

	title := c.event("onPageChangeTitle")
	assert.Equal(t, "Home", title.Args.(map[string]interface{})["title"])

	finished := c.event("onPageFinished")
	assert.Equal(t, srv.URL+"/", finished.Args.(map[string]interface{})["url"])

	c.call(2, platformview.ChannelName(viewID), "getTitle", nil)
	assert.Equal(t, "Home", c.reply(2).Result)
}

func TestNavigationRequestReply(t *testing.T) {
	srv := pageServer(t)
	h := newHarness(t)
	c := h.dial(t)

	c.create(viewID, map[string]interface{}{
		"initialUrl": srv.URL + "/",
		"settings": map[string]interface{}{
			"jsMode":                1,
			"hasNavigationDelegate": true,
		},
	})
	c.event("onPageFinished")

	c.call(2, platformview.ChannelName(viewID), "evaluateJavascript", "location.assign('/second')")
	request := c.event("navigationRequest")
	require.NotZero(t, request.ID)
	assert.Equal(t, map[string]interface{}{
		"url":            srv.URL + "/second",
		"isForMainFrame": true,
	}, request.Args)

	c.send(&channel.Envelope{Type: channel.EnvelopeReply, ID: request.ID, Status: channel.StatusSuccess, Result: true})
	finished := c.event("onPageFinished")
	assert.Equal(t, srv.URL+"/second", finished.Args.(map[string]interface{})["url"])
}

func TestSessionsDescribeViews(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)
	c.create(viewID, nil)
	c.create(viewID+1, map[string]interface{}{"javascriptChannelNames": []interface{}{"Bridge"}})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sessions := h.handler.Sessions(ctx)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Views, 2)
	assert.Equal(t, int64(viewID), sessions[0].Views[0].ID)
	assert.Equal(t, []string{"Bridge"}, sessions[0].Views[1].Channels)
	assert.Equal(t, int64(2), h.metrics.Snapshot().ActiveViews)
}

func TestDisconnectDisposesViews(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)
	c.create(viewID, nil)
	assert.Equal(t, int64(1), h.metrics.Snapshot().Connections)

	require.NoError(t, c.conn.Close())

	assert.Eventually(t, func() bool {
		snap := h.metrics.Snapshot()
		return h.handler.Count() == 0 && snap.ActiveViews == 0 && snap.Connections == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCloseEndsSessions(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)
	c.create(viewID, nil)

	h.handler.Close()
	assert.Equal(t, 0, h.handler.Count())
	assert.Equal(t, int64(0), h.metrics.Snapshot().ActiveViews)

	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := c.conn.ReadMessage()
	assert.Error(t, err)
}

func TestServeAfterCloseRejectsConnection(t *testing.T) {
	h := newHarness(t)
	h.handler.Close()

	c := h.dial(t)
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := c.conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, h.handler.Count())
}

func TestCloseWhileConnecting(t *testing.T) {
	h := newHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(h.url, nil)
			if err != nil {
				return
			}
			defer conn.Close()
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}

	h.handler.Close()
	wg.Wait()
	assert.Equal(t, 0, h.handler.Count())
}
