package otcomponents

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal"
)

func TestHTTPConfigurationBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := HTTPConfiguration().Build(basicClientContext())
		require.NoError(t, err)

		assert.Len(t, c.DefaultHeaders, 2)
		assert.Equal(t, testTenantToken, c.DefaultHeaders.Get("Authorization"))
		assert.Equal(t, "GoTrackingClient/"+internal.SDKVersion, c.DefaultHeaders.Get("User-Agent"))

		client := c.CreateHTTPClient()
		assert.Equal(t, DefaultConnectTimeout, client.Timeout)

		require.NotNil(t, client.Transport)
		transport := client.Transport.(*http.Transport)
		require.NotNil(t, transport)
		assert.Equal(t, reflect.ValueOf(http.ProxyFromEnvironment).Pointer(), reflect.ValueOf(transport.Proxy).Pointer())
		assert.Equal(t, 100, transport.MaxIdleConns)
		assert.Equal(t, 90*time.Second, transport.IdleConnTimeout)
		assert.Equal(t, 10*time.Second, transport.TLSHandshakeTimeout)
		assert.Equal(t, 1*time.Second, transport.ExpectContinueTimeout)
	})

	t.Run("bad CA certs are rejected", func(t *testing.T) {
		badCertData := []byte("no")

		_, err := HTTPConfiguration().CACert(badCertData).Build(basicClientContext())
		require.Error(t, err)

		certFile := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(certFile, badCertData, 0o600))
		_, err = HTTPConfiguration().CACertFile(certFile).Build(basicClientContext())
		require.Error(t, err)
	})

	t.Run("can set connect timeout", func(t *testing.T) {
		timeout := 700 * time.Millisecond
		c, err := HTTPConfiguration().ConnectTimeout(timeout).Build(basicClientContext())
		require.NoError(t, err)
		assert.Equal(t, timeout, c.CreateHTTPClient().Timeout)

		c, err = HTTPConfiguration().ConnectTimeout(0).Build(basicClientContext())
		require.NoError(t, err)
		assert.Equal(t, DefaultConnectTimeout, c.CreateHTTPClient().Timeout)
	})

	t.Run("can set proxy URL", func(t *testing.T) {
		u, err := url.Parse("https://fake-proxy")
		require.NoError(t, err)

		c, err := HTTPConfiguration().ProxyURL(u.String()).Build(basicClientContext())
		require.NoError(t, err)

		transport := c.CreateHTTPClient().Transport.(*http.Transport)
		require.NotNil(t, transport.Proxy)
		urlOut, err := transport.Proxy(&http.Request{})
		require.NoError(t, err)
		assert.Equal(t, u, urlOut)
	})

	t.Run("bad proxy URL is rejected", func(t *testing.T) {
		_, err := HTTPConfiguration().ProxyURL("://no").Build(basicClientContext())
		require.Error(t, err)
	})

	t.Run("can set custom headers", func(t *testing.T) {
		c, err := HTTPConfiguration().
			Header("X-Custom", "1").
			Header("Authorization", "override").
			Build(basicClientContext())
		require.NoError(t, err)

		assert.Equal(t, "1", c.DefaultHeaders.Get("X-Custom"))
		assert.Equal(t, "override", c.DefaultHeaders.Get("Authorization"))
	})

	t.Run("can set User-Agent", func(t *testing.T) {
		c, err := HTTPConfiguration().UserAgent("extra").Build(basicClientContext())
		require.NoError(t, err)
		assert.Equal(t, "GoTrackingClient/"+internal.SDKVersion+" extra", c.DefaultHeaders.Get("User-Agent"))
	})

	t.Run("can set HTTP client factory", func(t *testing.T) {
		custom := &http.Client{Timeout: time.Minute}
		c, err := HTTPConfiguration().
			HTTPClientFactory(func() *http.Client { return custom }).
			Build(basicClientContext())
		require.NoError(t, err)
		assert.Same(t, custom, c.CreateHTTPClient())
	})

	t.Run("nil safety", func(t *testing.T) {
		var b *HTTPConfigurationBuilder
		b = b.CACert(nil).ConnectTimeout(0).Header("a", "b").ProxyURL("").UserAgent("x")
		c, err := b.Build(basicClientContext())
		require.NoError(t, err)
		assert.Equal(t, testTenantToken, c.DefaultHeaders.Get("Authorization"))
	})
}
