package customHttpClient

import (
	"net/http"
	"time"

	"github.com/SHoar/Wedding-AI/internal/config"
)

// shared by every upstream SDK client so connections to the model APIs are reused
var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
	ForceAttemptHTTP2:   true,
}

// NewClient returns a client on the pooled transport. timeout bounds each call end to end; 0 means none.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
