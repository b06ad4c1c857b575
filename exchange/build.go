package exchange

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nextmidi/weburl/escape"
	"github.com/Nextmidi/weburl/url"
	"github.com/Nextmidi/weburl/version"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BuildHTTPRequest turns a URL value into a wire-ready request.
//
// Without UsePOST the parameters are appended to the address and there
// is no body. With UsePOST the encoding depends on the URL: multipart
// form data as soon as any upload file is present, urlencoded
// otherwise. A body set with WithPOSTData replaces the
// parameter-derived urlencoded body entirely; it is ignored in
// multipart mode and by GET requests.
func BuildHTTPRequest(u *url.URL, options *Options) (*http.Request, error) {
	method := http.MethodGet
	target := u.ToString(true)
	var body bodyTuple

	if options.UsePOST {
		method = http.MethodPost
		target = u.ToString(false)

		var err error
		body, err = buildPOSTBody(u)
		if err != nil {
			return nil, err
		}
	}

	r, err := http.NewRequest(method, target, body.reader)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for '%s'", target)
	}
	r.ContentLength = body.contentLength

	if body.contentType != "" {
		r.Header.Set("Content-Type", body.contentType)
	}
	r.Header.Set("User-Agent", fmt.Sprintf("weburl/%s", version.Current()))
	if options.Auth.Enabled {
		r.SetBasicAuth(options.Auth.UserName, options.Auth.Password)
	}

	if err := addExtraHeaders(r.Header, options.ExtraHeaders); err != nil {
		return nil, err
	}

	return r, nil
}

type bodyTuple struct {
	reader        io.Reader
	contentLength int64
	contentType   string
}

func buildPOSTBody(u *url.URL) (bodyTuple, error) {
	if len(u.FilesToUpload()) > 0 {
		return buildMultipartBody(u)
	}
	if data := u.PostData(); data != "" {
		return bodyTuple{
			reader:        strings.NewReader(data),
			contentLength: int64(len(data)),
			contentType:   "application/x-www-form-urlencoded",
		}, nil
	}
	return buildFormBody(u)
}

func buildFormBody(u *url.URL) (bodyTuple, error) {
	var b strings.Builder
	for i, p := range u.Parameters() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(escape.Escape(p.Value, true))
	}
	body := b.String()
	return bodyTuple{
		reader:        strings.NewReader(body),
		contentLength: int64(len(body)),
		contentType:   "application/x-www-form-urlencoded",
	}, nil
}

func buildMultipartBody(u *url.URL) (bodyTuple, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.SetBoundary(newBoundary()); err != nil {
		return bodyTuple{}, errors.Wrap(err, "setting multipart boundary")
	}

	for _, p := range u.Parameters() {
		if err := writer.WriteField(p.Name, p.Value); err != nil {
			return bodyTuple{}, errors.Wrapf(err, "writing field '%s'", p.Name)
		}
	}

	for _, f := range u.FilesToUpload() {
		contents, err := os.ReadFile(f.Path)
		if err != nil {
			return bodyTuple{}, errors.Wrapf(err, "reading upload file for '%s'", f.Name)
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Name, filepath.Base(f.Path)))
		if f.MIMEType != "" {
			header.Set("Content-Type", f.MIMEType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return bodyTuple{}, errors.Wrapf(err, "creating part for '%s'", f.Name)
		}
		if _, err := part.Write(contents); err != nil {
			return bodyTuple{}, errors.Wrapf(err, "writing part for '%s'", f.Name)
		}
	}

	if err := writer.Close(); err != nil {
		return bodyTuple{}, errors.Wrap(err, "finishing multipart body")
	}

	return bodyTuple{
		reader:        bytes.NewReader(buf.Bytes()),
		contentLength: int64(buf.Len()),
		contentType:   writer.FormDataContentType(),
	}, nil
}

// newBoundary returns a boundary token that cannot collide with body
// content by accident.
func newBoundary() string {
	return "weburl-" + uuid.NewString()
}

// addExtraHeaders adds caller-supplied raw header lines. Lines are
// added, never set, so existing headers with the same name stay in
// place.
func addExtraHeaders(header http.Header, extraHeaders string) error {
	for _, line := range strings.Split(extraHeaders, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return errors.Errorf("malformed extra header line: %s", line)
		}
		header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return nil
}
