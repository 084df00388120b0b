package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/resilience"
)

// ErrBodyTooLarge is returned when a response exceeds the configured limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Page is a fetched and decoded document.
type Page struct {
	// URL is the final URL after redirects.
	URL        string
	Status     int
	MediaType  string
	Body       string
	SetCookies []string
}

// Fetcher retrieves pages over HTTP with retries, a shared rate limit and
// a circuit breaker per host.
type Fetcher struct {
	client   *resty.Client
	limiter  *rate.Limiter
	breakers *resilience.Group
	maxBody  int64
}

// NewFetcher creates a fetcher from engine settings.
func NewFetcher(cfg config.EngineConfig) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil
	// Error pages are still pages.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.SetTimeout(cfg.FetchTimeout)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RequestsPerSecond)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	var breakers *resilience.Group
	if cfg.BreakerFailures > 0 {
		threshold := uint32(cfg.BreakerFailures)
		breakers = resilience.NewGroup(resilience.Settings{
			Timeout: cfg.BreakerTimeout,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			// A view abandoning its load says nothing about the host.
			IsFailure: func(err error) bool {
				return err != nil && !errors.Is(err, context.Canceled)
			},
		})
	}

	return &Fetcher{
		client:   restyClient,
		limiter:  limiter,
		breakers: breakers,
		maxBody:  cfg.MaxBodyBytes,
	}
}

// Fetch issues a GET for target with headers. Transport failures count
// against the target host's breaker; HTTP error statuses do not.
func (f *Fetcher) Fetch(ctx context.Context, target string, headers map[string]string) (*Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	var resp *resty.Response
	err := f.guard(target, func() error {
		var err error
		resp, err = f.client.R().
			SetContext(ctx).
			SetHeader("Accept-Encoding", acceptEncoding).
			SetHeaders(headers).
			Get(target)
		return err
	})
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if f.maxBody > 0 && int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%w: %d bytes from %s", ErrBodyTooLarge, len(body), target)
	}
	body, err = decompress(body, resp.Header().Get("Content-Encoding"), f.maxBody)
	if err != nil {
		return nil, err
	}

	final := target
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		final = raw.Request.URL.String()
	}

	text, mediaType := decodeBody(body, resp.Header().Get("Content-Type"))
	return &Page{
		URL:        final,
		Status:     resp.StatusCode(),
		MediaType:  mediaType,
		Body:       text,
		SetCookies: resp.Header().Values("Set-Cookie"),
	}, nil
}

func (f *Fetcher) guard(target string, req func() error) error {
	if f.breakers == nil {
		return req()
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return req()
	}
	if err := f.breakers.Do(u.Host, req); err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			return fmt.Errorf("%w: %s", errHostUnavailable, u.Host)
		}
		return err
	}
	return nil
}

// HostStates reports the breaker state of every host fetched so far.
func (f *Fetcher) HostStates() map[string]string {
	states := make(map[string]string)
	if f.breakers == nil {
		return states
	}
	for host, state := range f.breakers.States() {
		states[host] = state.String()
	}
	return states
}

// Failed reports whether the response status is an HTTP error.
func (p *Page) Failed() bool {
	return p.Status >= http.StatusBadRequest
}
