package s3

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebluefowl/cloudburrow/internal/storage"
)

type recorded struct {
	method      string
	path        string
	contentType string
}

// fakeBucket answers just enough of the S3 API for PutObject and DeleteObject.
type fakeBucket struct {
	mu       sync.Mutex
	requests []recorded
	status   int
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recorded{r.Method, r.URL.Path, r.Header.Get("Content-Type")})
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
		return
	}

	switch r.Method {
	case http.MethodPut:
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T, bucket *fakeBucket, opts Opts) *Client {
	t.Helper()
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	opts.Bucket = "assets"
	opts.Region = "us-east-1"
	opts.Endpoint = srv.URL
	opts.AccessKey = "test-key"
	opts.SecretKey = "test-secret"

	c, err := New(context.Background(), &opts)
	require.NoError(t, err)
	return c
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), &Opts{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	bucket := &fakeBucket{}
	c := newTestClient(t, bucket, Opts{Prefix: "media/", PublicBaseURL: "https://cdn.example.com/"})

	data := pngBytes(t, 3, 2)
	asset, err := c.Upload(context.Background(), data, "Sample File.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(asset.PublicID, "media/"))
	assert.True(t, strings.HasSuffix(asset.PublicID, "-Sample_File.png"))
	assert.Equal(t, "https://cdn.example.com/"+asset.PublicID, asset.SecureURL)
	assert.Equal(t, "png", asset.Format)
	assert.Equal(t, "image", asset.ResourceType)
	assert.Equal(t, "Sample File", asset.OriginalFilename)
	assert.Equal(t, int64(len(data)), asset.Bytes)
	assert.Equal(t, 3, asset.Width)
	assert.Equal(t, 2, asset.Height)

	require.Len(t, bucket.requests, 1)
	assert.Equal(t, http.MethodPut, bucket.requests[0].method)
	assert.Equal(t, "/assets/"+asset.PublicID, bucket.requests[0].path)
	assert.Equal(t, "image/png", bucket.requests[0].contentType)
}

func TestUploadDefaultPublicURL(t *testing.T) {
	bucket := &fakeBucket{}
	c := newTestClient(t, bucket, Opts{})

	asset, err := c.Upload(context.Background(), []byte("raw bytes"), "notes.bin")
	require.NoError(t, err)

	assert.Equal(t, "raw", asset.ResourceType)
	assert.Zero(t, asset.Width)
	assert.True(t, strings.HasSuffix(asset.SecureURL, "/assets/"+asset.PublicID))
}

func TestUploadFailure(t *testing.T) {
	bucket := &fakeBucket{status: http.StatusForbidden}
	c := newTestClient(t, bucket, Opts{})

	_, err := c.Upload(context.Background(), []byte("x"), "x.png")
	require.Error(t, err)

	var se *storage.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upload", se.Op)
	assert.Equal(t, provider, se.Provider)
}

func TestDelete(t *testing.T) {
	bucket := &fakeBucket{}
	c := newTestClient(t, bucket, Opts{})

	require.NoError(t, c.Delete(context.Background(), &storage.Asset{PublicID: "media/abc-sample.png"}))
	require.Len(t, bucket.requests, 1)
	assert.Equal(t, http.MethodDelete, bucket.requests[0].method)
	assert.Equal(t, "/assets/media/abc-sample.png", bucket.requests[0].path)
}

func TestDeleteFailure(t *testing.T) {
	bucket := &fakeBucket{status: http.StatusForbidden}
	c := newTestClient(t, bucket, Opts{})

	err := c.Delete(context.Background(), &storage.Asset{PublicID: "missing"})
	var se *storage.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "delete", se.Op)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a_b-c", sanitize("a b-c"))
	assert.Equal(t, "file", sanitize(""))
}
