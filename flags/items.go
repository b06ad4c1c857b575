package flags

import (
	"strings"

	"github.com/Nextmidi/weburl/url"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseTarget builds a URL value from the positional arguments: the
// URL itself followed by request items.
//
//	name=value   parameter (GET query string, or POST body with --post)
//	name@path    file to upload; forces multipart POST
//	@data        raw POST body
//
// An upload item may carry an explicit MIME type as
// "name@path;type=image/png"; otherwise the type is sniffed from the
// file contents.
func ParseTarget(args []string) (*url.URL, error) {
	if len(args) == 0 {
		return nil, newUsageError("URL is required")
	}

	target := url.New(args[0])
	for _, item := range args[1:] {
		var err error
		target, err = parseItem(target, item)
		if err != nil {
			return nil, err
		}
	}
	return target, nil
}

func parseItem(target *url.URL, item string) (*url.URL, error) {
	if data, ok := strings.CutPrefix(item, "@"); ok {
		return target.WithPOSTData(data), nil
	}

	for i, c := range item {
		switch c {
		case '=':
			return target.WithParameter(item[:i], item[i+1:]), nil
		case '@':
			return parseUploadItem(target, item[:i], item[i+1:])
		}
	}
	return nil, errors.Errorf("unknown request item: %s", item)
}

func parseUploadItem(target *url.URL, name, value string) (*url.URL, error) {
	path := value
	mimeType := ""
	if p, t, ok := strings.Cut(value, ";type="); ok {
		path = p
		mimeType = t
	}
	if path == "" {
		return nil, newUsageError("upload item needs a file path: " + name + "@PATH")
	}

	if mimeType == "" {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "detecting MIME type of '%s'", path)
		}
		mimeType = detected.String()
	}

	return target.WithFileToUpload(name, path, mimeType), nil
}
