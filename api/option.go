package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type config struct {
	httpClient   *http.Client
	accessToken  string
	cache        *ResponseCache
	refreshIn    time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Option is a function that sets a value in a config.
type Option func(*config) error

// getOpts creates a config and applies Options to it.
func getOpts(opts []Option) (config, error) {
	cfg := config{
		httpClient: http.DefaultClient,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, fmt.Errorf("option %d failed: %s", i, err)
		}
	}
	return cfg, nil
}

// WithClient allows creation of the http client using an underlying network
// round tripper / client.
func WithClient(c *http.Client) Option {
	return func(cfg *config) error {
		if c != nil {
			cfg.httpClient = c
		}
		return nil
	}
}

// WithAccessToken authenticates requests to a private repository. The token
// is sent as the access_token query parameter on every request.
func WithAccessToken(token string) Option {
	return func(cfg *config) error {
		cfg.accessToken = token
		return nil
	}
}

// WithCache sets the response cache. Clients without this option share the
// process-wide DefaultCache.
func WithCache(cache *ResponseCache) Option {
	return func(cfg *config) error {
		if cache != nil {
			cfg.cache = cache
		}
		return nil
	}
}

// WithCacheCapacity gives the client a response cache of its own, bounded to
// capacity responses, instead of sharing DefaultCache.
func WithCacheCapacity(capacity int) Option {
	return func(cfg *config) error {
		cache, err := NewResponseCache(capacity)
		if err != nil {
			return err
		}
		cfg.cache = cache
		return nil
	}
}

// WithRefreshInterval sets the interval to wait between automatic refreshes
// of the repository data. If set to 0, the default, then automatic refresh
// is disabled. Refresh can always be called explicitly.
func WithRefreshInterval(interval time.Duration) Option {
	return func(cfg *config) error {
		cfg.refreshIn = interval
		return nil
	}
}

// WithRetry configures a retriable HTTP client. Setting retryMax to zero,
// the default, disables the retriable client.
func WithRetry(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(cfg *config) error {
		if waitMin > waitMax {
			return errors.New("minimum retry wait time cannot be greater than maximum")
		}
		if retryMax < 0 {
			retryMax = 0
		}
		cfg.retryMax = retryMax
		cfg.retryWaitMin = waitMin
		cfg.retryWaitMax = waitMax
		return nil
	}
}
