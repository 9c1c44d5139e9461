// Package storage archives generated export files in S3-compatible object
// storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shopdesk/backend/internal/application/report"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultRegion         = "us-east-1"
	defaultLinkExpiration = 15 * time.Minute
)

var (
	_ report.ArchiveStorage = (*S3ArchiveStorage)(nil)
	_ report.ArchiveLinker  = (*S3ArchiveStorage)(nil)
)

// S3ArchiveStorage uploads export files to a bucket. It works with AWS S3
// and S3-compatible servers such as MinIO.
type S3ArchiveStorage struct {
	client         *s3.Client
	presignClient  *s3.PresignClient
	bucket         string
	linkExpiration time.Duration
	logger         *zap.Logger
}

// S3ArchiveStorageOption configures S3ArchiveStorage
type S3ArchiveStorageOption func(*S3ArchiveStorage)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) S3ArchiveStorageOption {
	return func(s *S3ArchiveStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLinkExpiration sets how long download links stay valid
func WithLinkExpiration(d time.Duration) S3ArchiveStorageOption {
	return func(s *S3ArchiveStorage) {
		if d > 0 {
			s.linkExpiration = d
		}
	}
}

// NewS3ArchiveStorage builds a client from cfg. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain applies.
func NewS3ArchiveStorage(ctx context.Context, cfg config.StorageConfig, opts ...S3ArchiveStorageOption) (*S3ArchiveStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access key id and secret access key must be set together")
	}

	endpoint, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3ArchiveStorage{
		client:         client,
		presignClient:  s3.NewPresignClient(client),
		bucket:         cfg.Bucket,
		linkExpiration: defaultLinkExpiration,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// normalizeEndpoint returns "" for AWS and an absolute URL otherwise
func normalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", nil
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid storage endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q", endpoint)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *S3ArchiveStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating archive bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores data under key
func (s *S3ArchiveStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Debug("Archived export",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// DownloadURL returns a presigned GET link for key
func (s *S3ArchiveStorage) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.linkExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to sign download link: %w", err)
	}
	return req.URL, nil
}

// Bucket returns the bucket name
func (s *S3ArchiveStorage) Bucket() string {
	return s.bucket
}
