package platformview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/channel/channeltest"
)

func TestAddAndRemoveJavascriptChannels(t *testing.T) {
	f := newFixture(t, 29)
	w, view := f.create(t, nil)

	rec := f.call("addJavascriptChannels", []interface{}{"Print", "Toaster"})
	require.Equal(t, channeltest.OutcomeSuccess, rec.Outcome())
	assert.Equal(t, []string{"Print", "Toaster"}, w.Channels())
	assert.Equal(t, []string{"Print", "Toaster"}, view.Interfaces())

	rec = f.call("removeJavascriptChannels", []interface{}{"Print", "Missing"})
	require.Equal(t, channeltest.OutcomeSuccess, rec.Outcome())
	assert.Equal(t, []string{"Toaster"}, w.Channels())
	assert.Equal(t, []string{"Toaster"}, view.Interfaces())
	assert.Empty(t, f.engine.Journal.Filter("view0 removeJavascriptInterface Missing"))
}

func TestReRegisteringChannelReplacesIt(t *testing.T) {
	f := newFixture(t, 29)
	w, view := f.create(t, map[string]interface{}{"javascriptChannelNames": []interface{}{"Print"}})
	first, ok := view.Interface("Print")
	require.True(t, ok)

	f.call("addJavascriptChannels", []interface{}{"Print"})

	second, ok := view.Interface("Print")
	require.True(t, ok)
	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"Print"}, w.Channels())
}

func TestJavascriptChannelArguments(t *testing.T) {
	f := newFixture(t, 29)
	f.create(t, nil)

	assert.Equal(t, channel.CodeNullArgument, f.call("addJavascriptChannels", nil).Code())
	assert.Equal(t, channel.CodeIllegalArgument, f.call("addJavascriptChannels", []interface{}{1}).Code())
	assert.Equal(t, channel.CodeNullArgument, f.call("removeJavascriptChannels", nil).Code())
}

func TestPostMessageRunsOnPoster(t *testing.T) {
	f := newFixture(t, 29)
	poster := &postRecorder{}
	f.cfg.Poster = poster
	_, view := f.create(t, map[string]interface{}{"javascriptChannelNames": []interface{}{"Print"}})

	ch, ok := view.Interface("Print")
	require.True(t, ok)
	ch.PostMessage("hello")

	assert.Empty(t, f.events(eventChannelMessage), "delivery waits for the UI thread")
	poster.run()

	events := f.events(eventChannelMessage)
	require.Len(t, events, 1)
	assert.Equal(t, map[string]interface{}{"channel": "Print", "message": "hello"}, eventArgs(t, events[0]))
	assert.Nil(t, events[0].Reply)
}
