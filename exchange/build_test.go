package exchange

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nextmidi/weburl/url"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHTTPRequest_GET(t *testing.T) {
	u := url.New("http://x.com").
		WithParameter("a", "1").
		WithParameter("b", "two words")

	r, err := BuildHTTPRequest(u, &Options{})

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, r.Method)
	assert.Equal(t, "http://x.com?a=1&b=two+words", r.URL.String())
	assert.Nil(t, r.Body)
}

func TestBuildHTTPRequest_GETIgnoresPOSTData(t *testing.T) {
	u := url.New("http://x.com").WithPOSTData("raw body")

	r, err := BuildHTTPRequest(u, &Options{})

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, r.Method)
	assert.Nil(t, r.Body)
}

func TestBuildHTTPRequest_URLEncodedPOST(t *testing.T) {
	u := url.New("http://x.com").
		WithParameter("a", "1").
		WithParameter("b", "two words")

	r, err := BuildHTTPRequest(u, &Options{UsePOST: true})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, r.Method)
	// Parameters travel in the body, not in the URL.
	assert.Equal(t, "http://x.com", r.URL.String())
	assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=two+words", string(body))
	assert.Equal(t, int64(len(body)), r.ContentLength)
}

func TestBuildHTTPRequest_ExplicitBodyWins(t *testing.T) {
	u := url.New("http://x.com").
		WithParameter("a", "1").
		WithPOSTData("exact=raw&payload=1")

	r, err := BuildHTTPRequest(u, &Options{UsePOST: true})

	require.NoError(t, err)
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, "exact=raw&payload=1", string(body))
}

func TestBuildHTTPRequest_MultipartPOST(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("pretend this is a png"), 0o644))

	u := url.New("http://x.com").
		WithParameter("title", "holiday").
		WithFileToUpload("photo", path, "image/png")

	r, err := BuildHTTPRequest(u, &Options{UsePOST: true})
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	boundary := params["boundary"]
	require.NotEmpty(t, boundary)

	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), r.ContentLength)
	// The boundary token only occurs as part delimiters.
	assert.Equal(t, 3, strings.Count(string(raw), boundary))

	reader := multipart.NewReader(strings.NewReader(string(raw)), boundary)

	field, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "title", field.FormName())
	assert.Empty(t, field.FileName())
	value, err := io.ReadAll(field)
	require.NoError(t, err)
	assert.Equal(t, "holiday", string(value))

	file, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "photo", file.FormName())
	assert.Equal(t, "photo.png", file.FileName())
	assert.Equal(t, "image/png", file.Header.Get("Content-Type"))
	contents, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "pretend this is a png", string(contents))

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestBuildHTTPRequest_MultipartWheneverFilesPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o644))

	// Plain parameters alone stay urlencoded; a single upload file
	// flips the encoding to multipart no matter how many parameters
	// are present.
	plain := url.New("http://x.com").WithParameter("a", "1").WithParameter("b", "2")
	r, err := BuildHTTPRequest(plain, &Options{UsePOST: true})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

	withFile := plain.WithFileToUpload("f", path, "application/octet-stream")
	r, err = BuildHTTPRequest(withFile, &Options{UsePOST: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
}

func TestBuildHTTPRequest_UploadFileMissing(t *testing.T) {
	u := url.New("http://x.com").
		WithFileToUpload("f", filepath.Join(t.TempDir(), "gone.bin"), "application/octet-stream")

	_, err := BuildHTTPRequest(u, &Options{UsePOST: true})

	assert.Error(t, err)
}

func TestBuildHTTPRequest_ExtraHeaders(t *testing.T) {
	u := url.New("http://x.com")
	options := &Options{
		ExtraHeaders: "X-Custom: one\r\nX-Custom: two\nUser-Agent: special-agent",
	}

	r, err := BuildHTTPRequest(u, options)

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, r.Header.Values("X-Custom"))
	// Extra headers are added, not deduplicated against the builder's own.
	userAgents := r.Header.Values("User-Agent")
	require.Len(t, userAgents, 2)
	assert.Equal(t, "special-agent", userAgents[1])
}

func TestBuildHTTPRequest_MalformedExtraHeader(t *testing.T) {
	_, err := BuildHTTPRequest(url.New("http://x.com"), &Options{ExtraHeaders: "no colon here"})
	assert.Error(t, err)
}

func TestBuildHTTPRequest_BasicAuth(t *testing.T) {
	options := &Options{
		Auth: AuthOptions{Enabled: true, UserName: "alice", Password: "open sesame"},
	}

	r, err := BuildHTTPRequest(url.New("http://x.com"), options)

	require.NoError(t, err)
	assert.Equal(t, "Basic YWxpY2U6b3BlbiBzZXNhbWU=", r.Header.Get("Authorization"))
}
