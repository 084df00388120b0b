package platformview

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
)

// Creation parameter keys.
const (
	paramSettings                = "settings"
	paramJavascriptChannelNames  = "javascriptChannelNames"
	paramAutoMediaPlaybackPolicy = "autoMediaPlaybackPolicy"
	paramUserAgent               = "userAgent"
	paramCookies                 = "cookies"
	paramInitialURL              = "initialUrl"
)

// autoMediaPlaybackAlwaysAllow is the policy index that lets media autoplay.
const autoMediaPlaybackAlwaysAllow = 1

// CreationParams are the validated construction parameters of a WebView.
type CreationParams struct {
	Settings               map[string]interface{}
	JavascriptChannelNames []string
	// AutoMediaPlaybackPolicy is nil when the parameter was absent.
	AutoMediaPlaybackPolicy *int
	// UserAgent is nil when the parameter was absent. An empty string
	// restores the engine default.
	UserAgent *string
	// HasCookies reports whether a cookie list was supplied at all.
	HasCookies bool
	Cookies    []Cookie
	InitialURL string
}

// ParseCreationParams validates raw creation parameters.
func ParseCreationParams(params map[string]interface{}) (*CreationParams, error) {
	out := &CreationParams{}

	if raw, ok := params[paramSettings]; ok && raw != nil {
		settings, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: settings must be a map, got %T", channel.ErrIllegalArgument, raw)
		}
		out.Settings = settings
	}

	if raw, ok := params[paramJavascriptChannelNames]; ok && raw != nil {
		names, err := channel.ToStringList(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paramJavascriptChannelNames, err)
		}
		out.JavascriptChannelNames = names
	}

	if raw, ok := params[paramAutoMediaPlaybackPolicy]; ok && raw != nil {
		policy, ok := channel.ToInt(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be an integer, got %T", channel.ErrIllegalArgument, paramAutoMediaPlaybackPolicy, raw)
		}
		out.AutoMediaPlaybackPolicy = &policy
	}

	if raw, ok := params[paramUserAgent]; ok {
		ua, err := userAgentValue(raw)
		if err != nil {
			return nil, err
		}
		out.UserAgent = &ua
	}

	if raw, ok := params[paramCookies]; ok {
		out.HasCookies = raw != nil
		if raw != nil {
			cookies, err := ParseCookies(raw)
			if err != nil {
				return nil, err
			}
			out.Cookies = cookies
		}
	}

	if raw, ok := params[paramInitialURL]; ok && raw != nil {
		url, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string, got %T", channel.ErrIllegalArgument, paramInitialURL, raw)
		}
		out.InitialURL = url
	}

	return out, nil
}

func userAgentValue(raw interface{}) (string, error) {
	if raw == nil {
		return "", nil
	}
	ua, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: userAgent must be a string, got %T", channel.ErrIllegalArgument, raw)
	}
	return ua, nil
}

// MergeParams lays params over defaults. Settings maps are merged key by key;
// every other parameter in params replaces the default wholesale.
func MergeParams(defaults, params map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(defaults)+len(params))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}

	base, baseOK := defaults[paramSettings].(map[string]interface{})
	override, overrideOK := params[paramSettings].(map[string]interface{})
	if baseOK && overrideOK {
		settings := make(map[string]interface{}, len(base)+len(override))
		for k, v := range base {
			settings[k] = v
		}
		for k, v := range override {
			settings[k] = v
		}
		merged[paramSettings] = settings
	}
	return merged
}
