package otcomponents

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/optistream/go-tracking-sdk/internal"
	"github.com/optistream/go-tracking-sdk/othttp"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

// DefaultConnectTimeout is the HTTP connection timeout that is used if HTTPConfigurationBuilder.ConnectTimeout
// is not set.
const DefaultConnectTimeout = 3 * time.Second

// HTTPConfigurationBuilder contains methods for configuring the SDK's networking behavior.
//
// If you want to set non-default values for any of these properties, create a builder with
// otcomponents.HTTPConfiguration(), change its properties with the HTTPConfigurationBuilder methods,
// and store it in Config.HTTP:
//
//	config := otclient.Config{
//	    HTTP: otcomponents.HTTPConfiguration().
//	        ConnectTimeout(3 * time.Second).
//	        ProxyURL(proxyUrl),
//	}
type HTTPConfigurationBuilder struct {
	inited            bool
	connectTimeout    time.Duration
	httpClientFactory func() *http.Client
	httpOptions       []othttp.TransportOption
	headers           http.Header
	proxyURL          *url.URL
	userAgent         string
	errs              []error
}

// HTTPConfiguration returns a configuration builder for the SDK's HTTP configuration.
//
//	config := otclient.Config{
//	    HTTP: otcomponents.HTTPConfiguration().
//	        ConnectTimeout(3 * time.Second).
//	        ProxyURL(proxyUrl),
//	}
func HTTPConfiguration() *HTTPConfigurationBuilder {
	b := &HTTPConfigurationBuilder{}
	b.checkValid()
	return b
}

func (b *HTTPConfigurationBuilder) checkValid() bool {
	if b == nil {
		internal.LogErrorNilPointerMethod("HTTPConfigurationBuilder")
		return false
	}
	if !b.inited {
		b.connectTimeout = DefaultConnectTimeout
		b.headers = make(http.Header)
		b.inited = true
	}
	return true
}

// CACert specifies a CA certificate to be added to the trusted root CA list for HTTPS requests.
//
// If the certificate data is invalid, the SDK client will fail to start.
func (b *HTTPConfigurationBuilder) CACert(certData []byte) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpOptions = append(b.httpOptions, othttp.CACertOption(certData))
	}
	return b
}

// CACertFile specifies a CA certificate to be added to the trusted root CA list for HTTPS requests,
// reading the certificate data from a file in PEM format.
//
// If the file cannot be read or does not contain a valid certificate, the SDK client will fail to start.
func (b *HTTPConfigurationBuilder) CACertFile(filePath string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpOptions = append(b.httpOptions, othttp.CACertFileOption(filePath))
	}
	return b
}

// ConnectTimeout sets the connection timeout.
//
// This is the maximum amount of time to wait for each individual connection attempt to a remote service
// before determining that that attempt has failed. It is not the same as the timeout for each event
// delivery, which is set with EventProcessorBuilder.SendTimeout.
//
// The default is DefaultConnectTimeout.
func (b *HTTPConfigurationBuilder) ConnectTimeout(connectTimeout time.Duration) *HTTPConfigurationBuilder {
	if b.checkValid() {
		if connectTimeout <= 0 {
			b.connectTimeout = DefaultConnectTimeout
		} else {
			b.connectTimeout = connectTimeout
		}
	}
	return b
}

// Header specifies a custom HTTP header that should be added to all requests to the ingestion service.
//
// If you use this to specify a header that the SDK sets by default, such as Authorization, your value
// replaces the default one.
func (b *HTTPConfigurationBuilder) Header(name string, value string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.headers.Set(name, value)
	}
	return b
}

// HTTPClientFactory specifies a function for creating each HTTP client instance that is used by the SDK.
//
// If you use this option, it overrides any other settings that you may have specified with ConnectTimeout,
// CACert, CACertFile, or ProxyURL; you are responsible for setting up any desired custom configuration on
// the HTTP client. The SDK may modify the client properties after the client is created.
func (b *HTTPConfigurationBuilder) HTTPClientFactory(httpClientFactory func() *http.Client) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpClientFactory = httpClientFactory
	}
	return b
}

// ProxyURL specifies a proxy URL to be used for all requests. This overrides any setting of the
// HTTP_PROXY, HTTPS_PROXY, or NO_PROXY environment variables.
func (b *HTTPConfigurationBuilder) ProxyURL(proxyURL string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		if proxyURL == "" {
			b.proxyURL = nil
		} else {
			u, err := url.Parse(proxyURL)
			if err != nil {
				b.errs = append(b.errs, err)
			}
			b.proxyURL = u
		}
	}
	return b
}

// UserAgent specifies an additional User-Agent header value to send with HTTP requests.
func (b *HTTPConfigurationBuilder) UserAgent(userAgent string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.userAgent = userAgent
	}
	return b
}

// Build is called internally by the SDK.
func (b *HTTPConfigurationBuilder) Build(
	clientContext subsystems.ClientContext,
) (subsystems.HTTPConfiguration, error) {
	if !b.checkValid() {
		defaults := HTTPConfiguration()
		return defaults.Build(clientContext)
	}
	if len(b.errs) > 0 {
		return subsystems.HTTPConfiguration{}, errors.Join(b.errs...)
	}
	headers := make(http.Header)
	headers.Set("Authorization", clientContext.GetTenantToken())
	userAgent := "GoTrackingClient/" + internal.SDKVersion
	if b.userAgent != "" {
		userAgent = userAgent + " " + b.userAgent
	}
	headers.Set("User-Agent", userAgent)
	for name, values := range b.headers {
		headers[name] = values
	}

	transportOpts := b.httpOptions
	if b.proxyURL != nil {
		transportOpts = append(transportOpts, othttp.ProxyOption(*b.proxyURL))
	}
	if _, _, err := othttp.NewHTTPTransport(transportOpts...); err != nil {
		return subsystems.HTTPConfiguration{}, err
	}

	clientFactory := b.httpClientFactory
	if clientFactory == nil {
		connectTimeout := b.connectTimeout
		clientFactory = func() *http.Client {
			client := internal.NewHTTPClient(connectTimeout, transportOpts...)
			return &client
		}
	}

	return subsystems.HTTPConfiguration{
		DefaultHeaders:   headers,
		CreateHTTPClient: clientFactory,
	}, nil
}
