package engine

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/GriffinCanCode/AgentOS/webview/internal/webview"
)

// Load error codes, matching the platform web view's.
const (
	codeUnknown           = -1
	codeHostLookup        = -2
	codeConnect           = -6
	codeTimeout           = -8
	codeUnsupportedScheme = -10
	codeBadURL            = -12
	codeTooManyRequests   = -15
)

var (
	errBadURL            = errors.New("bad url")
	errUnsupportedScheme = errors.New("unsupported scheme")
	errHostUnavailable   = errors.New("host unavailable after repeated failures")
)

// resourceError classifies a failed load.
func resourceError(err error) *webview.ResourceError {
	re := &webview.ResourceError{Code: codeUnknown, Description: err.Error(), Type: webview.ErrorUnknown}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	var netErr net.Error
	switch {
	case errors.Is(err, errBadURL):
		re.Code, re.Type = codeBadURL, webview.ErrorBadURL
	case errors.Is(err, errUnsupportedScheme):
		re.Code, re.Type = codeUnsupportedScheme, webview.ErrorUnsupportedScheme
	case errors.Is(err, errHostUnavailable):
		re.Code, re.Type = codeTooManyRequests, webview.ErrorTooManyRequests
	case errors.As(err, &dnsErr):
		re.Code, re.Type = codeHostLookup, webview.ErrorHostLookup
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		re.Code, re.Type = codeTimeout, webview.ErrorTimeout
	case errors.As(err, &opErr) && opErr.Op == "dial":
		re.Code, re.Type = codeConnect, webview.ErrorConnect
	}
	return re
}

// httpError describes an error status of a loaded page.
func httpError(status int) *webview.ResourceError {
	return &webview.ResourceError{
		Code:        status,
		Description: http.StatusText(status),
		Type:        webview.ErrorHTTP,
	}
}
