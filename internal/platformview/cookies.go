package platformview

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
)

// Cookie is one cookie record to install for a domain.
type Cookie struct {
	Domain string
	Path   string
	Name   string
	Value  string
}

// ParseCookies converts a decoded list of cookie maps. Missing fields are
// empty; fields that are present must be strings.
func ParseCookies(raw interface{}) ([]Cookie, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: cookies", channel.ErrNullArgument)
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: cookies must be a list, got %T", channel.ErrIllegalArgument, raw)
	}

	cookies := make([]Cookie, 0, len(list))
	for i, item := range list {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: cookie %d must be a map, got %T", channel.ErrIllegalArgument, i, item)
		}
		var c Cookie
		fields := []struct {
			key string
			dst *string
		}{
			{"domain", &c.Domain},
			{"path", &c.Path},
			{"name", &c.Name},
			{"value", &c.Value},
		}
		for _, f := range fields {
			v, present := record[f.key]
			if !present || v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: cookie %d field %s must be a string, got %T", channel.ErrIllegalArgument, i, f.key, v)
			}
			*f.dst = s
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

// syncCookies clears the cookie store, installs cookies and then runs then.
// On platforms that clear asynchronously, then runs from the clear callback
// so no load can start before the new cookies are in place.
func (w *WebView) syncCookies(cookies []Cookie, then func()) {
	manager := w.engine.Cookies()

	if w.caps.asyncCookieClear {
		manager.RemoveAllCookies(func(removed bool) {
			if w.disposed {
				return
			}
			w.logger.Debug("cookies cleared", zap.Bool("removed", removed))
			w.setCookies(cookies)
			then()
		})
		return
	}

	manager.RemoveAllCookiesSync()
	w.setCookies(cookies)
	then()
}

func (w *WebView) setCookies(cookies []Cookie) {
	manager := w.engine.Cookies()
	for _, c := range cookies {
		manager.SetCookie(c.Domain, "path="+c.Path)
		manager.SetCookie(c.Domain, c.Name+"="+c.Value)
	}
	manager.Flush()
	w.logger.Debug("cookies applied", zap.Int("count", len(cookies)))
}
