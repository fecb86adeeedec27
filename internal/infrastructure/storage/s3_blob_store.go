package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"climatec_os/internal/infrastructure/config"
	"climatec_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client creates an S3 client. When S3_ENDPOINT is set (minio, localstack)
// path-style addressing is used since those emulators do not serve bucket
// subdomains.
func NewS3Client(awsCfg aws.Config, cfg config.AWS) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
}

// S3BlobStore stores service-order photos in a bucket, keyed by path.
type S3BlobStore struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

var _ interfaces.IBlobStore = (*S3BlobStore)(nil)

func NewS3BlobStore(client *s3.Client, region string, cfg config.Storage) *S3BlobStore {
	return &S3BlobStore{
		client:        client,
		bucket:        cfg.Bucket,
		region:        region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Upload writes body at path and returns the URL clients download it from.
func (s *S3BlobStore) Upload(ctx context.Context, path, contentType string, body []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[storage][s3] put failed bucket=%s path=%s err=%v", s.bucket, path, err)
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return s.URL(path), nil
}

func (s *S3BlobStore) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		log.Printf("[storage][s3] delete failed bucket=%s path=%s err=%v", s.bucket, path, err)
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// URL is PHOTOS_PUBLIC_BASE_URL/path when configured (CDN or emulator),
// otherwise the virtual-hosted S3 URL.
func (s *S3BlobStore) URL(path string) string {
	escaped := escapePath(path)
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
