package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Config holds the object store connection settings.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // overrides the client endpoint when building public URLs
}

// S3Storage implements domain.ImageStorage on MinIO / S3.
type S3Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
	logger     *logger.Logger
}

// NewS3Storage connects to the object store and makes sure the bucket exists.
func NewS3Storage(ctx context.Context, cfg Config, log *logger.Logger) (*S3Storage, error) {
	log = log.Named("S3Storage")
	log.Info("Initializing S3 MinIO Storage", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket), zap.Bool("use_ssl", cfg.UseSSL))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Error("failed to create MinIO client", zap.String("endpoint", cfg.Endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := ensureBucket(ctx, client, cfg.Bucket, log); err != nil {
		return nil, err
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = client.EndpointURL().String()
	}

	return &S3Storage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		logger:     log,
	}, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string, log *logger.Logger) error {
	err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	if err == nil {
		log.Info("Bucket created", zap.String("bucket", bucket))
		return nil
	}
	exists, errBucketExists := client.BucketExists(ctx, bucket)
	if errBucketExists == nil && exists {
		log.Info("Bucket already exists", zap.String("bucket", bucket))
		return nil
	}
	log.Error("failed to make or verify bucket", zap.String("bucket", bucket), zap.NamedError("make_bucket_error", err), zap.NamedError("check_exists_error", errBucketExists))
	return fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucket, err, errBucketExists)
}

// Upload stores data under objectName and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	s.logger.Debug("uploading object",
		zap.String("bucket", s.bucket),
		zap.String("object_key", objectName),
		zap.Int("size_bytes", len(data)))

	info, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", objectName), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectName, s.bucket, err)
	}

	s.logger.Info("object uploaded", zap.String("key", info.Key), zap.String("etag", info.ETag), zap.Int64("size", info.Size))
	return s.PublicURL(objectName), nil
}

// PublicURL is <public base>/<bucket>/<objectName>.
func (s *S3Storage) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName)
}
