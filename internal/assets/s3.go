package assets

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/spidevmax/craterra/internal/config"
	"github.com/spidevmax/craterra/internal/errors"
)

// Asset identifies an object stored on the external asset host.
type Asset struct {
	Key string
	URL string
}

// Store is the external asset host used for cover art and avatars.
type Store interface {
	Upload(ctx context.Context, folder, contentType string, r io.Reader) (Asset, error)
	Delete(ctx context.Context, key string) error
}

// S3Store implements Store against any S3-compatible endpoint (MinIO in
// development, S3 proper in production).
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// Ensure S3Store implements Store
var _ Store = (*S3Store)(nil)

// NewS3Store builds an S3 client from static credentials and a custom endpoint.
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	base := cfg.S3PublicBaseURL
	if base == "" {
		base = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

// Upload stores the object under a fresh date-partitioned key and returns
// its reference.
func (s *S3Store) Upload(ctx context.Context, folder, contentType string, r io.Reader) (Asset, error) {
	key := objectKey(folder)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("upload asset: %w", err)
	}
	return Asset{Key: key, URL: s.publicBaseURL + "/" + key}, nil
}

// Delete removes an object by key.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// objectKey builds "<folder>/<year>/<month>/<day>/<uuid>".
func objectKey(folder string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%s", folder, d.Year(), int(d.Month()), d.Day(), uuid.New())
}

// allowedImageTypes are the upload formats accepted for covers and avatars.
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// SniffImage detects the content type of an upload, rewinds the reader, and
// rejects anything that is not a supported image.
func SniffImage(r io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return mtype.String(), nil
		}
	}
	return "", errors.ErrUnsupportedImage
}
