package webview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformAtLeast(t *testing.T) {
	p := Platform{SDKInt: SDKKitKat}

	assert.True(t, p.AtLeast(SDKJellyBeanMR1))
	assert.True(t, p.AtLeast(SDKKitKat))
	assert.False(t, p.AtLeast(SDKLollipop))
}

func TestWindowTransport(t *testing.T) {
	var transport WindowTransport
	assert.Nil(t, transport.View())
	assert.False(t, transport.Sent())

	transport.SendToTarget()
	assert.True(t, transport.Sent())
}

func TestBaseClientLetsNavigationThrough(t *testing.T) {
	var c Client = BaseClient{}
	assert.False(t, c.ShouldOverrideURLLoading(nil, &ResourceRequest{URL: "https://example.com"}))
}
