package url

import (
	"regexp"
	"strings"
)

var (
	reWellFormed = regexp.MustCompile(`^[a-zA-Z]+:(//)?[^\s/?]+(/\S*)?(\?\S*)?$`)
	reWebsite    = regexp.MustCompile(`^\S*[^\s.]\.[^\s.]\S*$`)
)

// IsWellFormed reports whether the address looks like a URL: a scheme,
// an optional "//", a non-empty domain and an optional path. This is a
// heuristic, not an RFC 3986 validator.
func (u *URL) IsWellFormed() bool {
	return reWellFormed.MatchString(u.address)
}

// Scheme returns the part before "://", e.g. "http" for
// "http://www.xyz.com/foobar". Empty if the address has no scheme.
func (u *URL) Scheme() string {
	i := strings.Index(u.address, ":")
	if i <= 0 || !strings.HasPrefix(u.address[i:], "://") {
		return ""
	}
	return u.address[:i]
}

// Domain returns the host part, e.g. "www.xyz.com" for
// "http://www.xyz.com/foobar".
func (u *URL) Domain() string {
	rest := u.address[u.domainStart():]
	if end := strings.IndexAny(rest, "/?"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// SubPath returns the path after the domain without its leading slash
// and without the query string, e.g. "foo/bar" for
// "http://www.xyz.com/foo/bar?x=1".
func (u *URL) SubPath() string {
	rest := u.address[u.domainEnd():]
	rest = strings.TrimPrefix(rest, "/")
	if q := strings.IndexRune(rest, '?'); q >= 0 {
		rest = rest[:q]
	}
	return rest
}

// WithNewSubPath returns a copy of the URL whose path is replaced by
// newPath, e.g. "http://x.com/foo?x=1" with "bar" becomes
// "http://x.com/bar?x=1". A query string embedded in the original
// address is kept verbatim; parameters added with WithParameter are
// unaffected either way, since they are re-derived at serialization
// time.
func (u *URL) WithNewSubPath(newPath string) *URL {
	prefix := u.address[:u.domainEnd()]
	query := ""
	if q := strings.IndexRune(u.address, '?'); q >= 0 {
		query = u.address[q:]
	}

	c := u.clone()
	c.address = prefix + "/" + strings.TrimPrefix(newPath, "/") + query
	return c
}

// IsProbablyAWebsiteURL guesses whether s is a website address: it has
// a '.' between two non-separator characters and no whitespace. This
// is not foolproof.
func IsProbablyAWebsiteURL(s string) bool {
	return reWebsite.MatchString(s)
}

// IsProbablyAnEmailAddress guesses whether s is an email address:
// exactly one '@', a '.' somewhere after it, and no whitespace. This
// is not foolproof.
func IsProbablyAnEmailAddress(s string) bool {
	at := strings.IndexRune(s, '@')
	if at <= 0 || strings.Count(s, "@") != 1 {
		return false
	}
	if strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }) >= 0 {
		return false
	}
	dot := strings.LastIndexByte(s, '.')
	return dot > at+1 && dot < len(s)-1
}

// domainStart is the index right after "://", or 0 when the address
// has no scheme.
func (u *URL) domainStart() int {
	if i := strings.Index(u.address, ":"); i > 0 && strings.HasPrefix(u.address[i:], "://") {
		return i + 3
	}
	return 0
}

// domainEnd is the index of the first '/' or '?' after the domain, or
// the end of the address.
func (u *URL) domainEnd() int {
	start := u.domainStart()
	rest := u.address[start:]
	if end := strings.IndexAny(rest, "/?"); end >= 0 {
		return start + end
	}
	return len(u.address)
}
