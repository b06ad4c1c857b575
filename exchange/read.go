package exchange

import (
	"io"

	"github.com/Nextmidi/weburl/url"
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// ReadEntireBinaryStream downloads the whole resource into memory.
// This is the variant to use when a failed read must be told apart
// from a legitimately empty response.
func ReadEntireBinaryStream(u *url.URL, usePOST bool) ([]byte, error) {
	stream, err := Open(u, &Options{UsePOST: usePOST})
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	return data, nil
}

// ReadEntireTextStream downloads the whole resource as a string. Any
// failure yields an empty string, indistinguishable from an empty
// response; use ReadEntireBinaryStream when that matters.
func ReadEntireTextStream(u *url.URL, usePOST bool) string {
	data, err := ReadEntireBinaryStream(u, usePOST)
	if err != nil {
		return ""
	}
	return string(data)
}

// ReadEntireXMLStream downloads the resource and parses it as an XML
// document. Returns nil when the read fails or the text is not
// well-formed XML.
func ReadEntireXMLStream(u *url.URL, usePOST bool) *etree.Document {
	data, err := ReadEntireBinaryStream(u, usePOST)
	if err != nil {
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil
	}
	if doc.Root() == nil {
		return nil
	}
	return doc
}
