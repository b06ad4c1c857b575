package exchange

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nextmidi/weburl/url"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "1", r.URL.Query().Get("a"))
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	stream, err := Open(url.New(server.URL).WithParameter("a", "1"), nil)

	require.NoError(t, err)
	defer stream.Close()
	body, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestOpen_POSTDeliversParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "a=1&b=two+words", string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := url.New(server.URL).
		WithParameter("a", "1").
		WithParameter("b", "two words")
	stream, err := Open(u, &Options{UsePOST: true})

	require.NoError(t, err)
	stream.Close()
}

func TestOpen_NonSuccessStatusStillYieldsStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not here"))
	}))
	defer server.Close()

	stream, err := Open(url.New(server.URL), nil)

	require.NoError(t, err)
	defer stream.Close()
	body, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "not here", string(body))
}

func TestOpen_ProgressReportsCompleteTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := url.New(server.URL).WithParameter("a", "1")

	var calls int
	var lastSent, total int64
	options := &Options{
		UsePOST: true,
		Progress: func(bytesSent, totalBytes int64) bool {
			calls++
			lastSent = bytesSent
			total = totalBytes
			return true
		},
	}

	stream, err := Open(u, options)

	require.NoError(t, err)
	stream.Close()
	assert.GreaterOrEqual(t, calls, 1)
	assert.Equal(t, int64(len("a=1")), total)
	assert.Equal(t, total, lastSent)
}

func TestOpen_CancelledOnFirstCallback(t *testing.T) {
	bodySeen := make(chan int64, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := io.Copy(io.Discard, r.Body)
		bodySeen <- n
	}))
	defer server.Close()

	u := url.New(server.URL).WithParameter("a", "1")
	options := &Options{
		UsePOST: true,
		Progress: func(bytesSent, totalBytes int64) bool {
			return false
		},
	}

	stream, err := Open(u, options)

	assert.Nil(t, stream)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)

	// If the handler ran at all, no body bytes made it through.
	select {
	case n := <-bodySeen:
		assert.Equal(t, int64(0), n)
	case <-time.After(2 * time.Second):
	}
}

func TestOpen_CancelledMidTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
	}))
	defer server.Close()

	// A large enough body to need several reads.
	big := make([]byte, 1<<20)
	u := url.New(server.URL).WithPOSTData(string(big))

	options := &Options{
		UsePOST: true,
		Progress: func(bytesSent, totalBytes int64) bool {
			return bytesSent == 0
		},
	}

	stream, err := Open(u, options)

	assert.Nil(t, stream)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestConnectTimeout(t *testing.T) {
	assert.Equal(t, defaultConnectTimeout, connectTimeout(0))
	assert.Equal(t, time.Duration(0), connectTimeout(-1))
	assert.Equal(t, 5*time.Second, connectTimeout(5*time.Second))
}

func TestBuildHTTPClient_RedirectPolicy(t *testing.T) {
	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/final" {
			_, _ = w.Write([]byte("final"))
			return
		}
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer redirecting.Close()

	// Redirects are not followed by default.
	stream, err := Open(url.New(redirecting.URL), nil)
	require.NoError(t, err)
	stream.Close()

	resp, err := SendRequest(url.New(redirecting.URL), &Options{})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, err = SendRequest(url.New(redirecting.URL), &Options{FollowRedirects: true})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "final", string(body))
}

func TestOpen_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nobody listens anymore

	stream, err := Open(url.New(server.URL), nil)

	assert.Nil(t, stream)
	assert.Error(t, err)
}
