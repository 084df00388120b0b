package engine

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/GriffinCanCode/AgentOS/webview/internal/looper"
)

type storedCookie struct {
	name  string
	value string
	path  string
}

// CookieJar is the engine's cookie store, keyed by host. A cookie stored
// for a domain is sent to that domain and its subdomains below the public
// suffix, on request paths under its Path.
type CookieJar struct {
	poster looper.Poster

	mu      sync.Mutex
	hosts   map[string][]storedCookie
	flushes int
}

func newCookieJar(poster looper.Poster) *CookieJar {
	return &CookieJar{poster: poster, hosts: make(map[string][]storedCookie)}
}

// SetCookie stores one Set-Cookie style value for target, which may be a
// URL or a bare domain. A Domain attribute widens the cookie to a parent
// domain of the target host; one naming an unrelated domain or a public
// suffix is rejected. An expired cookie deletes the stored one.
func (j *CookieJar) SetCookie(target, value string) {
	c, err := http.ParseSetCookie(value)
	if err != nil {
		return
	}
	host := cookieHost(target)
	if host == "" {
		return
	}
	if c.Domain != "" {
		domain := strings.TrimPrefix(strings.ToLower(c.Domain), ".")
		if !domainMatch(host, domain) || (domain != host && isPublicSuffix(domain)) {
			return
		}
		host = domain
	}
	path := c.Path
	if !strings.HasPrefix(path, "/") {
		path = defaultPath(target)
	}

	expired := c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now()))

	j.mu.Lock()
	defer j.mu.Unlock()
	list := j.hosts[host]
	for i, existing := range list {
		if existing.name == c.Name && existing.path == path {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if !expired {
		list = append(list, storedCookie{name: c.Name, value: c.Value, path: path})
	}
	if len(list) == 0 {
		delete(j.hosts, host)
		return
	}
	j.hosts[host] = list
}

// Cookie returns the Cookie header value for target.
func (j *CookieJar) Cookie(target string) string {
	host := cookieHost(target)
	if host == "" {
		return ""
	}
	path := requestPath(target)

	j.mu.Lock()
	defer j.mu.Unlock()

	var pairs []string
	for _, domain := range domainChain(host) {
		for _, c := range j.hosts[domain] {
			if pathMatch(path, c.path) {
				pairs = append(pairs, c.name+"="+c.value)
			}
		}
	}
	return strings.Join(pairs, "; ")
}

// RemoveAllCookies clears the jar and posts callback to the looper.
func (j *CookieJar) RemoveAllCookies(callback func(removed bool)) {
	removed := j.clear()
	if callback == nil {
		return
	}
	j.poster.Post(func() {
		callback(removed)
	})
}

// RemoveAllCookiesSync clears the jar.
func (j *CookieJar) RemoveAllCookiesSync() {
	j.clear()
}

// Flush marks every cookie set so far as durable. The jar is in memory, so
// this only advances the flush count.
func (j *CookieJar) Flush() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.flushes++
}

// Flushes returns how many times Flush has run.
func (j *CookieJar) Flushes() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.flushes
}

// Len returns the number of stored cookies.
func (j *CookieJar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, list := range j.hosts {
		n += len(list)
	}
	return n
}

func (j *CookieJar) clear() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	removed := len(j.hosts) > 0
	j.hosts = make(map[string][]storedCookie)
	return removed
}

// store records the Set-Cookie headers of a response from target.
func (j *CookieJar) store(target string, headers []string) {
	for _, h := range headers {
		j.SetCookie(target, h)
	}
}

// cookieHost extracts the lower-cased host of a URL or bare domain.
func cookieHost(target string) string {
	target = strings.TrimSpace(target)
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return ""
		}
		return strings.ToLower(u.Hostname())
	}
	if i := strings.IndexAny(target, "/:"); i >= 0 {
		target = target[:i]
	}
	return strings.TrimPrefix(strings.ToLower(target), ".")
}

// domainChain returns host followed by each parent domain down to the
// registrable domain. IP addresses and public suffixes have no parents.
func domainChain(host string) []string {
	chain := []string{host}
	if net.ParseIP(host) != nil {
		return chain
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return chain
	}
	for host != root {
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
		chain = append(chain, host)
	}
	return chain
}

func domainMatch(host, domain string) bool {
	if host == domain {
		return true
	}
	return net.ParseIP(host) == nil && strings.HasSuffix(host, "."+domain)
}

func isPublicSuffix(domain string) bool {
	suffix, _ := publicsuffix.PublicSuffix(domain)
	return suffix == domain
}

// requestPath is the path of a URL target; bare domains request "/".
func requestPath(target string) string {
	if !strings.Contains(target, "://") {
		return "/"
	}
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.Path
}

// defaultPath is the directory of the target's path.
func defaultPath(target string) string {
	path := requestPath(target)
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

func pathMatch(requested, cookie string) bool {
	if requested == cookie {
		return true
	}
	if !strings.HasPrefix(requested, cookie) {
		return false
	}
	return strings.HasSuffix(cookie, "/") || requested[len(cookie)] == '/'
}
