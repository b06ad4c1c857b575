package exchange

import "time"

// ProgressFunc is invoked while a POST body is being transmitted.
// Returning false aborts the transfer with ErrCancelled.
type ProgressFunc func(bytesSent, totalBytes int64) bool

type Options struct {
	// UsePOST selects POST; parameters then travel in the body instead
	// of the query string.
	UsePOST bool

	// ExtraHeaders holds raw header lines separated by newlines. They
	// are added after the builder's own headers and are never
	// deduplicated against them.
	ExtraHeaders string

	// ConnectTimeout bounds connection establishment. Zero picks the
	// default, a negative value disables the timeout, a positive value
	// is used as-is. It does not bound the transfer once it has
	// started.
	ConnectTimeout time.Duration

	// Progress, when non-nil, is called synchronously on the calling
	// goroutine during body transmission. It must not block for long:
	// the transfer stalls while it runs.
	Progress ProgressFunc

	FollowRedirects bool
	SkipVerify      bool
	Auth            AuthOptions
}

type AuthOptions struct {
	Enabled  bool
	UserName string
	Password string
}
