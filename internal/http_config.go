package internal

import (
	"net/http"
	"time"

	"github.com/optistream/go-tracking-sdk/othttp"
)

const defaultHTTPTimeout = 3 * time.Second

// NewHTTPClient creates an HTTP client based on the SDK's configuration.
func NewHTTPClient(timeout time.Duration, options ...othttp.TransportOption) http.Client {
	client := http.Client{
		Timeout: timeout,
	}
	if timeout <= 0 {
		client.Timeout = defaultHTTPTimeout
	}
	allOpts := []othttp.TransportOption{othttp.ConnectTimeoutOption(timeout)}
	allOpts = append(allOpts, options...)
	if transport, _, err := othttp.NewHTTPTransport(allOpts...); err == nil {
		client.Transport = transport
	}
	return client
}
