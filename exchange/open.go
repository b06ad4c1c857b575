package exchange

import (
	"io"
	"net/http"

	"github.com/Nextmidi/weburl/url"
	"github.com/pkg/errors"
)

// ErrCancelled is returned when the progress callback aborted the
// transfer.
var ErrCancelled = errors.New("cancelled by progress callback")

// SendRequest resolves the URL into a request, sends it and returns
// the response. Any response counts as success, whatever its status
// code; failures are connection-level problems, a missing upload file
// or a cancellation through the progress callback.
func SendRequest(u *url.URL, options *Options) (*http.Response, error) {
	if options == nil {
		options = &Options{}
	}

	r, err := BuildHTTPRequest(u, options)
	if err != nil {
		return nil, err
	}

	var progress *progressReader
	if options.Progress != nil && r.Body != nil {
		progress = &progressReader{
			body:     r.Body,
			callback: options.Progress,
			total:    r.ContentLength,
		}
		r.Body = progress
		// A rewind would bypass the progress accounting.
		r.GetBody = nil
	}

	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(r)
	if err != nil {
		if progress != nil && progress.cancelled {
			return nil, ErrCancelled
		}
		return nil, errors.Wrapf(err, "opening stream for '%s'", u.ToString(false))
	}

	return resp, nil
}

// Open sends a request for the URL and returns the response body as a
// readable stream positioned at its start. The caller owns the stream
// and must close it. A nil stream always comes with a non-nil error.
func Open(u *url.URL, options *Options) (io.ReadCloser, error) {
	resp, err := SendRequest(u, options)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// progressReader reports transmission progress to the callback as the
// transport drains the request body. The callback runs before every
// read, so a false return stops the upload at the current byte count.
type progressReader struct {
	body      io.ReadCloser
	callback  ProgressFunc
	sent      int64
	total     int64
	cancelled bool
}

func (pr *progressReader) Read(p []byte) (int, error) {
	if !pr.callback(pr.sent, pr.total) {
		pr.cancelled = true
		return 0, ErrCancelled
	}
	n, err := pr.body.Read(p)
	pr.sent += int64(n)
	return n, err
}

func (pr *progressReader) Close() error {
	return pr.body.Close()
}
