package utils

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// defaults sized for a scraping client that makes two calls per inbound request
const (
	defaultClientTimeout         = 25 * time.Second // absolute deadline for one upstream call
	defaultResponseHeaderTimeout = 20 * time.Second
	defaultIdleConnTimeout       = 90 * time.Second
	defaultTLSHandshakeTimeout   = 10 * time.Second
	defaultExpectContinueTimeout = 1 * time.Second

	defaultMaxConnsPerHost     = 64
	defaultMaxIdleConns        = 64
	defaultMaxIdleConnsPerHost = 16

	defaultDialerTimeout   = 5 * time.Second
	defaultDialerKeepAlive = 30 * time.Second
)

// ClientConfig captures tunables for the HTTP client/transport.
// All fields are optional. zero-values will be replaced by defaults.
type ClientConfig struct {
	ClientTimeout time.Duration
	// NoTimeout leaves both the client deadline and the response-header wait unbounded;
	// the caller's context is then the only limit.
	NoTimeout bool

	ResponseHeaderTimeout time.Duration
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration

	MaxConnsPerHost     int
	MaxIdleConns        int
	MaxIdleConnsPerHost int

	DialerTimeout   time.Duration
	DialerKeepAlive time.Duration

	ForceAttemptHTTP2 bool                                  // default true
	Proxy             func(*http.Request) (*url.URL, error) // default http.ProxyFromEnvironment

	// Transport replaces the built transport entirely when set; pool and dialer settings are then ignored.
	Transport http.RoundTripper
}

// ClientOption ----- Functional options pattern -----
type ClientOption func(*ClientConfig)

// WithClientTimeout caps one request at d. Zero disables the cap; negative values fall back to the default.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.ClientTimeout = d
		c.NoTimeout = d == 0
	}
}
func WithMaxConnsPerHost(n int) ClientOption { return func(c *ClientConfig) { c.MaxConnsPerHost = n } }
func WithProxy(p func(*http.Request) (*url.URL, error)) ClientOption {
	return func(c *ClientConfig) { c.Proxy = p }
}
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *ClientConfig) { c.Transport = rt }
}

// DefaultClientConfig returns a copy of the library defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ClientTimeout:         defaultClientTimeout,
		ResponseHeaderTimeout: defaultResponseHeaderTimeout,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshakeTimeout,
		ExpectContinueTimeout: defaultExpectContinueTimeout,
		MaxConnsPerHost:       defaultMaxConnsPerHost,
		MaxIdleConns:          defaultMaxIdleConns,
		MaxIdleConnsPerHost:   defaultMaxIdleConnsPerHost,
		DialerTimeout:         defaultDialerTimeout,
		DialerKeepAlive:       defaultDialerKeepAlive,
		ForceAttemptHTTP2:     true,
		Proxy:                 http.ProxyFromEnvironment,
	}
}

// NewHTTPClient builds an *http.Client with defaults overridden by opts.
// Redirects are followed by the standard policy; cookies are never kept between calls.
func NewHTTPClient(opts ...ClientOption) *http.Client {
	cfg := DefaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sanitizeClientConfig(&cfg)

	rt := cfg.Transport
	if rt == nil {
		rt = &http.Transport{
			Proxy: cfg.Proxy,
			DialContext: (&net.Dialer{
				Timeout:   cfg.DialerTimeout,
				KeepAlive: cfg.DialerKeepAlive,
			}).DialContext,
			MaxConnsPerHost:       cfg.MaxConnsPerHost,
			MaxIdleConns:          cfg.MaxIdleConns,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
			TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
			ExpectContinueTimeout: cfg.ExpectContinueTimeout,
			ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
			ForceAttemptHTTP2:     cfg.ForceAttemptHTTP2,
		}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.ClientTimeout,
	}
}

// sanitizeClientConfig replaces non-positive values with defaults; only NoTimeout can switch the deadlines off.
func sanitizeClientConfig(c *ClientConfig) {
	if c.NoTimeout {
		c.ClientTimeout = 0
		c.ResponseHeaderTimeout = 0
	} else {
		c.ClientTimeout = orDefault(c.ClientTimeout, defaultClientTimeout)
		c.ResponseHeaderTimeout = orDefault(c.ResponseHeaderTimeout, defaultResponseHeaderTimeout)
	}
	c.IdleConnTimeout = orDefault(c.IdleConnTimeout, defaultIdleConnTimeout)
	c.TLSHandshakeTimeout = orDefault(c.TLSHandshakeTimeout, defaultTLSHandshakeTimeout)
	c.ExpectContinueTimeout = orDefault(c.ExpectContinueTimeout, defaultExpectContinueTimeout)
	c.DialerTimeout = orDefault(c.DialerTimeout, defaultDialerTimeout)
	c.DialerKeepAlive = orDefault(c.DialerKeepAlive, defaultDialerKeepAlive)

	c.MaxConnsPerHost = orDefault(c.MaxConnsPerHost, defaultMaxConnsPerHost)
	c.MaxIdleConns = orDefault(c.MaxIdleConns, defaultMaxIdleConns)
	c.MaxIdleConnsPerHost = orDefault(c.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost)

	if c.Proxy == nil {
		c.Proxy = http.ProxyFromEnvironment
	}
}

func orDefault[T ~int | ~int64](v, d T) T {
	if v > 0 {
		return v
	}
	return d
}
