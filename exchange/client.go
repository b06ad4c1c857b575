package exchange

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// defaultConnectTimeout is used when Options.ConnectTimeout is zero.
const defaultConnectTimeout = 30 * time.Second

// BuildHTTPClient builds the client that carries a single request. The
// timeout only bounds connection establishment; once the transfer has
// started, cancellation happens through the progress callback.
func BuildHTTPClient(options *Options) (*http.Client, error) {
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		// Do not follow redirects
		return http.ErrUseLastResponse
	}
	if options.FollowRedirects {
		checkRedirect = nil
	}

	dialer := net.Dialer{
		Timeout:   connectTimeout(options.ConnectTimeout),
		KeepAlive: 30 * time.Second,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = options.SkipVerify

	client := http.Client{
		CheckRedirect: checkRedirect,
		Transport:     transport,
	}
	return &client, nil
}

// connectTimeout maps the tri-state timeout value onto a dialer
// timeout: zero picks the default, negative means block indefinitely.
func connectTimeout(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return defaultConnectTimeout
	case d < 0:
		return 0
	default:
		return d
	}
}
