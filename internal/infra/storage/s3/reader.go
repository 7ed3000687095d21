package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxObjectSize bounds the property document read from the bucket.
const maxObjectSize = 4 << 20

var ErrObjectTooLarge = errors.New("s3: object too large")

// Options configures access to an S3-compatible endpoint.
type Options struct {
	Endpoint  string
	UseSSL    bool
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
}

// ObjectReader fetches a single object, the property document, from a bucket.
type ObjectReader struct {
	bucket string
	key    string
	client *minio.Client
	logger *slog.Logger
}

// NewObjectReader configures a reader using the provided endpoint and credentials.
func NewObjectReader(opts Options, logger *slog.Logger) (*ObjectReader, error) {
	cleanEndpoint := strings.TrimSpace(opts.Endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	bucket := strings.TrimSpace(opts.Bucket)
	if bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	key := strings.Trim(strings.TrimSpace(opts.Key), "/")
	if key == "" {
		return nil, errors.New("s3: object key is required")
	}

	minioClient, err := minio.New(parseEndpoint(cleanEndpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(opts.AccessKey), strings.TrimSpace(opts.SecretKey), ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	return &ObjectReader{bucket: bucket, key: key, client: minioClient, logger: logger}, nil
}

func (r *ObjectReader) Read(ctx context.Context) ([]byte, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, r.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3: get object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("s3: read object %s/%s: %w", r.bucket, r.key, err)
	}
	if len(data) > maxObjectSize {
		return nil, fmt.Errorf("%w: %s/%s", ErrObjectTooLarge, r.bucket, r.key)
	}
	if r.logger != nil {
		r.logger.Info("s3 object fetched", "bucket", r.bucket, "key", r.key, "bytes", len(data))
	}
	return data, nil
}

func (r *ObjectReader) Describe() string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, r.key)
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}
