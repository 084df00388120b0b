package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Engine config
	assert.Equal(t, 29, cfg.Engine.SDKInt)
	assert.Equal(t, 30*time.Second, cfg.Engine.FetchTimeout)
	assert.Equal(t, 5*time.Second, cfg.Engine.ScriptTimeout)
	assert.Equal(t, 0, cfg.Engine.MaxRetries)
	assert.Equal(t, int64(10<<20), cfg.Engine.MaxBodyBytes)
	assert.Equal(t, 5, cfg.Engine.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.Engine.BreakerTimeout)
	assert.Empty(t, cfg.Profile.Path)

	// Rate limit config
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "127.0.0.1",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"ENGINE_SDK_INT":          "19",
		"ENGINE_FETCH_TIMEOUT":    "2s",
		"ENGINE_SCRIPT_TIMEOUT":   "250ms",
		"ENGINE_RPS":              "5",
		"ENGINE_BURST":            "10",
		"ENGINE_MAX_RETRIES":      "2",
		"ENGINE_USER_AGENT":       "test-agent",
		"WEBVIEW_PROFILE":         "/etc/webview/profile.yaml",
		"RATE_LIMIT_ENABLED":      "false",
		"ENGINE_BREAKER_FAILURES": "0",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 19, cfg.Engine.SDKInt)
	assert.Equal(t, 2*time.Second, cfg.Engine.FetchTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.ScriptTimeout)
	assert.Equal(t, float64(5), cfg.Engine.RequestsPerSecond)
	assert.Equal(t, 10, cfg.Engine.Burst)
	assert.Equal(t, 2, cfg.Engine.MaxRetries)
	assert.Equal(t, "test-agent", cfg.Engine.UserAgent)
	assert.Equal(t, "/etc/webview/profile.yaml", cfg.Profile.Path)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Zero(t, cfg.Engine.BreakerFailures)
}

func TestLoadOrDefaultOnBadValue(t *testing.T) {
	t.Setenv("ENGINE_SDK_INT", "lollipop")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 29, cfg.Engine.SDKInt)
}

func TestLoadProfileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
settings:
  jsMode: 1
  hasNavigationDelegate: true
javascriptChannelNames: [Print, Toaster]
autoMediaPlaybackPolicy: 1
userAgent: profile-agent
cookies:
  - domain: example.com
    path: /
    name: session
    value: abc
initialUrl: https://example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "profile-agent", profile.UserAgent)
	assert.Equal(t, []string{"Print", "Toaster"}, profile.JavascriptChannelNames)
	require.Len(t, profile.Cookies, 1)
	assert.Equal(t, "session", profile.Cookies[0].Name)

	params := profile.Params()
	assert.Equal(t, "https://example.com", params["initialUrl"])
	assert.Equal(t, 1, params["autoMediaPlaybackPolicy"])
	assert.Equal(t, []interface{}{"Print", "Toaster"}, params["javascriptChannelNames"])
	assert.Equal(t, []interface{}{map[string]interface{}{
		"domain": "example.com", "path": "/", "name": "session", "value": "abc",
	}}, params["cookies"])
	assert.Contains(t, params["settings"], "jsMode")
}

func TestLoadProfileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	content := `
userAgent = "toml-agent"
initialUrl = "https://example.org"

[[cookies]]
domain = "example.org"
path = "/"
name = "id"
value = "42"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "toml-agent", profile.UserAgent)
	assert.Equal(t, "https://example.org", profile.InitialURL)
	require.Len(t, profile.Cookies, 1)
	assert.Equal(t, "42", profile.Cookies[0].Value)

	params := profile.Params()
	assert.NotContains(t, params, "settings")
	assert.NotContains(t, params, "autoMediaPlaybackPolicy")
}

func TestLoadProfileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadProfile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	ini := filepath.Join(dir, "profile.ini")
	require.NoError(t, os.WriteFile(ini, []byte("a=b"), 0o644))
	_, err = LoadProfile(ini)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("= nope"), 0o644))
	_, err = LoadProfile(bad)
	assert.Error(t, err)
}

func TestNilProfileParams(t *testing.T) {
	var p *Profile
	assert.Empty(t, p.Params())
}
