package platformview

import (
	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/monitoring"
)

// Outbound method names.
const (
	eventPageChangeTitle   = "onPageChangeTitle"
	eventPageJumpURL       = "onPageJumpURL"
	eventPageStarted       = "onPageStarted"
	eventPageFinished      = "onPageFinished"
	eventWebResourceError  = "onWebResourceError"
	eventNavigationRequest = "navigationRequest"
	eventChannelMessage    = "javascriptChannelMessage"
)

// outbound sends view events on the view's channel.
type outbound struct {
	channel *channel.MethodChannel
	metrics *monitoring.Metrics
}

func (o *outbound) invoke(method string, args map[string]interface{}, reply channel.Result) {
	if o.metrics != nil {
		o.metrics.RecordEvent(method)
	}
	o.channel.InvokeMethod(method, args, reply)
}
