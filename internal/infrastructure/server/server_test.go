package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/platformview"
)

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	t.Helper()
	s, err := NewServer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
		ts.Close()
	})
	return s, ts
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHealthAndRoot(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	var health map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/health", &health))
	assert.Equal(t, "healthy", health["status"])
	assert.EqualValues(t, 0, health["sessions"])

	var root map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/", &root))
	assert.Equal(t, platformview.ViewType, root["view_type"])
}

func TestMethodsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	var body struct {
		Methods []string `json:"methods"`
	}
	getJSON(t, ts.URL+"/methods", &body)
	assert.Contains(t, body.Methods, "loadUrl")
	assert.Contains(t, body.Methods, "getScrollY")
	assert.Len(t, body.Methods, len(platformview.Methods()))
}

func TestViewsOverStream(t *testing.T) {
	s, ts := newTestServer(t, config.Default())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	codec := channel.NewCodec()
	data, err := codec.Encode(&channel.Envelope{
		Type:    channel.EnvelopeCall,
		ID:      1,
		Channel: platformview.FactoryChannel,
		Method:  "create",
		Args:    map[string]interface{}{"id": 4, "viewType": platformview.ViewType},
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	reply, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, channel.StatusSuccess, reply.Status)

	var views struct {
		Sessions []struct {
			ID    string `json:"id"`
			Views []struct {
				ID      int64  `json:"id"`
				Channel string `json:"channel"`
			} `json:"views"`
		} `json:"sessions"`
		TotalViews int `json:"total_views"`
	}
	getJSON(t, ts.URL+"/views", &views)
	require.Len(t, views.Sessions, 1)
	assert.NotEmpty(t, views.Sessions[0].ID)
	assert.Equal(t, 1, views.TotalViews)
	assert.Equal(t, platformview.ChannelName(4), views.Sessions[0].Views[0].Channel)

	assert.Equal(t, int64(1), s.Metrics().Snapshot().ActiveViews)
}

func TestPrometheusEndpoint(t *testing.T) {
	_, ts := newTestServer(t, config.Default())

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "webview_http_requests_total")
}

func TestRateLimitFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1}
	_, ts := newTestServer(t, cfg)

	first, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	first.Body.Close()
	second, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	second.Body.Close()

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestProfileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("userAgent: profile-agent\n"), 0o644))

	cfg := config.Default()
	cfg.Profile.Path = path
	_, err := NewServer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	cfg.Profile.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewServer(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
