// Package url represents a remote resource address together with the
// GET/POST parameters and upload files that should accompany a request
// to it. A URL is immutable: every With* method returns a derived
// copy, so values can be shared freely between goroutines and chained
// without side effects.
package url

import (
	"strings"

	"github.com/Nextmidi/weburl/escape"
)

// Param is a single name/value pair. Order of addition is preserved
// and reproduced when the URL is serialized.
type Param struct {
	Name  string
	Value string
}

// Upload names a file whose contents are sent as one part of a
// multipart POST. The file is read when the request is opened, not
// when the Upload is added, so the path must still be readable then.
type Upload struct {
	Name     string
	Path     string
	MIMEType string
}

type URL struct {
	address  string
	params   []Param
	uploads  []Upload
	postData string
}

// New creates a URL from a raw address string. The address may already
// carry a query string; it is kept verbatim and is not parsed into the
// parameter list.
func New(address string) *URL {
	return &URL{address: address}
}

func (u *URL) IsEmpty() bool {
	return u.address == ""
}

// ToString returns the textual form of the URL. If includeGetParameters
// is true, parameters added with WithParameter are appended in order,
// each value escaped, joined to the address with '?' or '&' depending
// on whether the address already has a query string.
func (u *URL) ToString(includeGetParameters bool) string {
	if !includeGetParameters || len(u.params) == 0 {
		return u.address
	}

	var b strings.Builder
	b.WriteString(u.address)
	separator := "?"
	if strings.ContainsRune(u.address, '?') {
		separator = "&"
	}
	for _, p := range u.params {
		b.WriteString(separator)
		b.WriteString(p.Name)
		b.WriteString("=")
		b.WriteString(escape.Escape(p.Value, true))
		separator = "&"
	}
	return b.String()
}

func (u *URL) String() string {
	return u.ToString(true)
}

// WithParameter returns a copy of the URL with a parameter appended.
// The value is escaped at serialization time, not here.
func (u *URL) WithParameter(name, value string) *URL {
	c := u.clone()
	c.params = append(c.params, Param{Name: name, Value: value})
	return c
}

// WithFileToUpload returns a copy of the URL with a file-upload
// parameter appended. Adding at least one upload makes a POST through
// this URL use multipart encoding. Only the path is stored here; the
// file itself is read when the request is opened.
func (u *URL) WithFileToUpload(name, path, mimeType string) *URL {
	c := u.clone()
	c.uploads = append(c.uploads, Upload{Name: name, Path: path, MIMEType: mimeType})
	return c
}

// WithPOSTData returns a copy of the URL carrying a raw POST body.
// When set, it replaces the parameter-derived body of an urlencoded
// POST; it is ignored by GET requests and by multipart POSTs.
func (u *URL) WithPOSTData(data string) *URL {
	c := u.clone()
	c.postData = data
	return c
}

// Parameters returns the parameters added with WithParameter, in
// order. The returned slice is a copy.
func (u *URL) Parameters() []Param {
	return append([]Param(nil), u.params...)
}

// FilesToUpload returns the upload entries added with WithFileToUpload,
// in order. The returned slice is a copy.
func (u *URL) FilesToUpload() []Upload {
	return append([]Upload(nil), u.uploads...)
}

func (u *URL) PostData() string {
	return u.postData
}

// clone copies the backing arrays so that derived values never share
// state with their origin.
func (u *URL) clone() *URL {
	return &URL{
		address:  u.address,
		params:   append([]Param(nil), u.params...),
		uploads:  append([]Upload(nil), u.uploads...),
		postData: u.postData,
	}
}
