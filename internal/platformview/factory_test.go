package platformview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/channel/channeltest"
)

func createArgs(id int, params map[string]interface{}) map[string]interface{} {
	args := map[string]interface{}{"id": id, "viewType": ViewType}
	if params != nil {
		args["params"] = params
	}
	return args
}

func TestFactoryCreateAndDispose(t *testing.T) {
	f := newFixture(t, 29)
	factory := NewFactory(f.cfg, nil)
	factory.Bind()

	rec := f.messenger.Call(FactoryChannel, "create", createArgs(3, map[string]interface{}{"initialUrl": "https://flutter.dev"}))
	require.Equal(t, channeltest.OutcomeSuccess, rec.Outcome(), rec.Message())
	assert.Equal(t, int64(3), rec.Value())

	w, ok := factory.Get(3)
	require.True(t, ok)
	assert.Equal(t, "https://flutter.dev", w.View().URL())
	assert.True(t, f.messenger.HasHandler(ChannelName(3)))
	assert.Equal(t, int64(1), f.metrics.Snapshot().ActiveViews)

	rec = f.messenger.Call(FactoryChannel, "dispose", map[string]interface{}{"id": 3})
	require.Equal(t, channeltest.OutcomeSuccess, rec.Outcome())
	assert.True(t, w.Disposed())
	assert.False(t, f.messenger.HasHandler(ChannelName(3)))
	assert.Equal(t, int64(0), f.metrics.Snapshot().ActiveViews)

	_, ok = factory.Get(3)
	assert.False(t, ok)
}

func TestFactoryErrors(t *testing.T) {
	f := newFixture(t, 29)
	factory := NewFactory(f.cfg, nil)
	factory.Bind()

	require.Equal(t, channeltest.OutcomeSuccess, f.messenger.Call(FactoryChannel, "create", createArgs(1, nil)).Outcome())

	tests := []struct {
		name   string
		method string
		args   interface{}
		code   string
	}{
		{"duplicate id", "create", createArgs(1, nil), channel.CodeIllegalState},
		{"wrong view type", "create", map[string]interface{}{"id": 2, "viewType": "plugins.example/map"}, channel.CodeIllegalArgument},
		{"missing id", "create", map[string]interface{}{"viewType": ViewType}, channel.CodeNullArgument},
		{"params not a map", "create", map[string]interface{}{"id": 2, "viewType": ViewType, "params": "x"}, channel.CodeIllegalArgument},
		{"bad creation params", "create", createArgs(2, map[string]interface{}{"settings": map[string]interface{}{"jsMode": 9}}), channel.CodeIllegalArgument},
		{"unknown id", "dispose", map[string]interface{}{"id": 99}, channel.CodeIllegalState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.messenger.Call(FactoryChannel, tt.method, tt.args)
			assert.Equal(t, channeltest.OutcomeError, rec.Outcome())
			assert.Equal(t, tt.code, rec.Code())
		})
	}

	assert.Equal(t, []int64{1}, factory.IDs())
	assert.Equal(t, channeltest.OutcomeNotImplemented, f.messenger.Call(FactoryChannel, "resize", nil).Outcome())
}

func TestFactoryMergesDefaults(t *testing.T) {
	f := newFixture(t, 29)
	factory := NewFactory(f.cfg, map[string]interface{}{
		"settings":   map[string]interface{}{"jsMode": 1, "userAgent": "profile-agent"},
		"initialUrl": "https://default.example",
	})

	w, err := factory.Create(5, ViewType, map[string]interface{}{
		"settings": map[string]interface{}{"userAgent": "caller-agent"},
	})
	require.NoError(t, err)

	settings := w.View().Settings()
	assert.True(t, settings.JavaScriptEnabled())
	assert.Equal(t, "caller-agent", settings.UserAgentString())
	assert.Equal(t, "https://default.example", w.View().URL())
}

func TestFactoryDisposeAllAndDescribe(t *testing.T) {
	f := newFixture(t, 29)
	factory := NewFactory(f.cfg, nil)

	for _, id := range []int64{4, 2} {
		_, err := factory.Create(id, ViewType, map[string]interface{}{"javascriptChannelNames": []interface{}{"B", "A"}})
		require.NoError(t, err)
	}

	infos := factory.Describe()
	require.Len(t, infos, 2)
	assert.Equal(t, int64(2), infos[0].ID)
	assert.Equal(t, ChannelName(2), infos[0].Channel)
	assert.Equal(t, []string{"A", "B"}, infos[0].Channels)
	assert.Equal(t, 2, factory.Stats()["total_views"])

	factory.DisposeAll()
	assert.Empty(t, factory.IDs())
	for _, v := range f.engine.Views() {
		assert.True(t, v.Destroyed())
	}
}

func TestMergeParams(t *testing.T) {
	merged := MergeParams(
		map[string]interface{}{"settings": map[string]interface{}{"a": 1, "b": 2}, "userAgent": "x"},
		map[string]interface{}{"settings": map[string]interface{}{"b": 3}, "initialUrl": "u"},
	)
	assert.Equal(t, map[string]interface{}{
		"settings":   map[string]interface{}{"a": 1, "b": 3},
		"userAgent":  "x",
		"initialUrl": "u",
	}, merged)

	assert.Empty(t, MergeParams(nil, nil))
}
