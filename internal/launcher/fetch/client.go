package fetch

import (
	"net"
	"net/http"
	"time"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// userAgentTransport stamps the launcher User-Agent on every request.
type userAgentTransport struct {
	inner http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", helpers.FetchUserAgent)
	}
	return t.inner.RoundTrip(req)
}

// New creates a configured HTTP client with reasonable defaults.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{inner: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   helpers.FetchConnectTimeout,
				KeepAlive: helpers.FetchDialContextKeepAlive,
			}).DialContext,
			ForceAttemptHTTP2:     helpers.FetchForceAttemptHTTP2,
			MaxIdleConns:          helpers.FetchMaxIdleConns,
			MaxIdleConnsPerHost:   helpers.FetchMaxIdleConnsPerHost,
			IdleConnTimeout:       helpers.FetchIdleConnTimeout,
			TLSHandshakeTimeout:   helpers.FetchTLSHandshakeTimeout,
			ExpectContinueTimeout: helpers.FetchExpectContinueTimeout,
		}},
	}
}
