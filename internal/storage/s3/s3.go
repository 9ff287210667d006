// internal/storage/s3/s3.go
package s3

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/segmentio/ksuid"
	"github.com/thebluefowl/cloudburrow/internal/storage"
)

const provider = "s3"

var _ storage.Gateway = (*Client)(nil)

// Client stores assets in an S3-compatible bucket (AWS, Backblaze B2, R2, MinIO).
type Client struct {
	client        *s3.Client
	bucket        string
	prefix        string
	publicBaseURL string
	partSizeMB    int64
	concurrency   int
}

// Opts holds options to initialize the client.
type Opts struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Prefix        string // key prefix for uploaded assets
	PublicBaseURL string // base of secure_url; defaults to <endpoint>/<bucket>
	PartSizeMB    int64  // default 16
	Concurrency   int    // default 4
}

// New builds a client. It does not contact the bucket.
func New(ctx context.Context, opts *Opts) (*Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	if opts.PartSizeMB <= 0 {
		opts.PartSizeMB = 16
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(opts.Endpoint))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) { o.UsePathStyle = true })

	base := opts.PublicBaseURL
	if base == "" {
		endpoint := opts.Endpoint
		if endpoint == "" {
			endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", opts.Region)
		}
		base = strings.TrimRight(endpoint, "/") + "/" + opts.Bucket
	}

	return &Client{
		client:        client,
		bucket:        opts.Bucket,
		prefix:        strings.Trim(opts.Prefix, "/"),
		publicBaseURL: strings.TrimRight(base, "/"),
		partSizeMB:    opts.PartSizeMB,
		concurrency:   opts.Concurrency,
	}, nil
}

// Upload stores data under a fresh key derived from filename. The key is
// the asset's public id.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (*storage.Asset, error) {
	key := c.newKey(filename)

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploader := manager.NewUploader(c.client, func(m *manager.Uploader) {
		m.PartSize = c.partSizeMB * 1024 * 1024
		m.Concurrency = c.concurrency
	})

	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"original-filename": filepath.Base(filename)},
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return nil, &storage.ServiceError{
			Provider: provider,
			Op:       "upload",
			Err:      fmt.Errorf("%s/%s: %w", c.bucket, key, err),
		}
	}

	asset := &storage.Asset{
		PublicID:         key,
		SecureURL:        c.publicBaseURL + "/" + key,
		Format:           storage.Format(filename),
		ResourceType:     storage.ResourceType(filename),
		OriginalFilename: stem(filename),
		Bytes:            int64(len(data)),
	}
	if asset.ResourceType == "image" {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			asset.Width, asset.Height = cfg.Width, cfg.Height
		}
	}
	return asset, nil
}

// Delete removes the object stored under the asset's public id.
func (c *Client) Delete(ctx context.Context, asset *storage.Asset) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(asset.PublicID),
	}

	if _, err := c.client.DeleteObject(ctx, input); err != nil {
		return &storage.ServiceError{
			Provider: provider,
			Op:       "delete",
			Err:      fmt.Errorf("%s/%s: %w", c.bucket, asset.PublicID, err),
		}
	}
	return nil
}

func (c *Client) newKey(filename string) string {
	name := ksuid.New().String() + "-" + sanitize(stem(filename))
	if ext := storage.Format(filename); ext != "" {
		name += "." + ext
	}
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sanitize keeps keys URL-safe.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
