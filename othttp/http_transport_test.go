package othttp

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTLSServer(t *testing.T, action func(server *httptest.Server, certData []byte)) {
	server := httptest.NewTLSServer(httphelpers.HandlerWithStatus(200))
	defer server.Close()
	certData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	action(server, certData)
}

func clientWithTransport(transport *http.Transport) *http.Client {
	client := *http.DefaultClient
	client.Transport = transport
	return &client
}

func TestDefaultTransportDoesNotAcceptSelfSignedCert(t *testing.T) {
	withTLSServer(t, func(server *httptest.Server, certData []byte) {
		transport, _, err := NewHTTPTransport()
		require.NoError(t, err)

		_, err = clientWithTransport(transport).Get(server.URL)
		require.Error(t, err)
	})
}

func TestCanAcceptSelfSignedCertWithCA(t *testing.T) {
	withTLSServer(t, func(server *httptest.Server, certData []byte) {
		transport, _, err := NewHTTPTransport(CACertOption(certData))
		require.NoError(t, err)

		resp, err := clientWithTransport(transport).Get(server.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestCanAcceptSelfSignedCertWithCAFile(t *testing.T) {
	withTLSServer(t, func(server *httptest.Server, certData []byte) {
		certFile := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(certFile, certData, 0o600))

		transport, _, err := NewHTTPTransport(CACertFileOption(certFile))
		require.NoError(t, err)

		resp, err := clientWithTransport(transport).Get(server.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestErrorForNonexistentCertFile(t *testing.T) {
	_, _, err := NewHTTPTransport(CACertFileOption(filepath.Join(t.TempDir(), "missing.pem")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't read CA certificate file")
}

func TestErrorForCertFileWithBadData(t *testing.T) {
	certFile := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(certFile, []byte("sorry"), 0o600))

	_, _, err := NewHTTPTransport(CACertFileOption(certFile))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CA certificate data")
}

func TestErrorForBadCertData(t *testing.T) {
	_, _, err := NewHTTPTransport(CACertOption([]byte("sorry")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CA certificate data")
}

func TestConnectTimeout(t *testing.T) {
	_, dialer, err := NewHTTPTransport()
	require.NoError(t, err)
	assert.Equal(t, DefaultConnectTimeout, dialer.Timeout)

	_, dialer, err = NewHTTPTransport(ConnectTimeoutOption(700 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 700*time.Millisecond, dialer.Timeout)
}

func TestProxyEnvVarsAreUsedByDefault(t *testing.T) {
	transport, _, err := NewHTTPTransport()
	require.NoError(t, err)
	require.NotNil(t, transport.Proxy)
	assert.Equal(t, reflect.ValueOf(http.ProxyFromEnvironment).Pointer(), reflect.ValueOf(transport.Proxy).Pointer())
}

func TestCanSetProxyURL(t *testing.T) {
	u, err := url.Parse("https://fake-proxy")
	require.NoError(t, err)
	transport, _, err := NewHTTPTransport(ProxyOption(*u))
	require.NoError(t, err)
	require.NotNil(t, transport.Proxy)
	urlOut, err := transport.Proxy(&http.Request{})
	require.NoError(t, err)
	assert.Equal(t, u, urlOut)
}
