package othttp

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	// DefaultConnectTimeout is the HTTP connection timeout that is used if you do not specify
	// ConnectTimeoutOption.
	DefaultConnectTimeout = 10 * time.Second

	defaultKeepAlive = 1 * time.Minute
)

type transportExtraOptions struct {
	caCerts        *x509.CertPool
	connectTimeout time.Duration
	proxyURL       *url.URL
}

// TransportOption is the interface for optional configuration parameters that can be passed to
// NewHTTPTransport.
type TransportOption interface {
	apply(opts *transportExtraOptions) error
}

type connectTimeoutOption struct {
	timeout time.Duration
}

func (o connectTimeoutOption) apply(opts *transportExtraOptions) error {
	opts.connectTimeout = o.timeout
	return nil
}

// ConnectTimeoutOption specifies the maximum time to wait for a TCP connection. If it is zero or
// negative, DefaultConnectTimeout is used.
func ConnectTimeoutOption(timeout time.Duration) TransportOption {
	return connectTimeoutOption{timeout: timeout}
}

type caCertOption struct {
	certData []byte
}

func (o caCertOption) apply(opts *transportExtraOptions) error {
	if opts.caCerts == nil {
		opts.caCerts = x509.NewCertPool()
	}
	if !opts.caCerts.AppendCertsFromPEM(o.certData) {
		return errors.New("invalid CA certificate data")
	}
	return nil
}

// CACertOption specifies a CA certificate to be added to the trusted root CA list for HTTPS
// requests, in PEM format.
func CACertOption(certData []byte) TransportOption {
	return caCertOption{certData: certData}
}

type caCertFileOption struct {
	filePath string
}

func (o caCertFileOption) apply(opts *transportExtraOptions) error {
	bytes, err := os.ReadFile(o.filePath)
	if err != nil {
		return fmt.Errorf("can't read CA certificate file: %v", err)
	}
	return caCertOption{certData: bytes}.apply(opts)
}

// CACertFileOption specifies a CA certificate file to be added to the trusted root CA list for
// HTTPS requests. The file must be in PEM format.
func CACertFileOption(filePath string) TransportOption {
	return caCertFileOption{filePath: filePath}
}

type proxyOption struct {
	url url.URL
}

func (o proxyOption) apply(opts *transportExtraOptions) error {
	u := o.url
	opts.proxyURL = &u
	return nil
}

// ProxyOption specifies a proxy URL to be used for all requests. This overrides any setting of the
// HTTP_PROXY, HTTPS_PROXY, or NO_PROXY environment variables.
func ProxyOption(proxyURL url.URL) TransportOption {
	return proxyOption{url: proxyURL}
}

// NewHTTPTransport creates a customized http.Transport struct using the specified options. It
// returns both the Transport and an associated net.Dialer.
func NewHTTPTransport(options ...TransportOption) (*http.Transport, *net.Dialer, error) {
	extraOptions := transportExtraOptions{connectTimeout: DefaultConnectTimeout}
	for _, o := range options {
		if err := o.apply(&extraOptions); err != nil {
			return nil, nil, err
		}
	}
	if extraOptions.connectTimeout <= 0 {
		extraOptions.connectTimeout = DefaultConnectTimeout
	}
	dialer := &net.Dialer{
		Timeout:   extraOptions.connectTimeout,
		KeepAlive: defaultKeepAlive,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if extraOptions.caCerts != nil {
		transport.TLSClientConfig = &tls.Config{RootCAs: extraOptions.caCerts} //nolint:gosec
	}
	if extraOptions.proxyURL != nil {
		transport.Proxy = http.ProxyURL(extraOptions.proxyURL)
	}
	return transport, dialer, nil
}
