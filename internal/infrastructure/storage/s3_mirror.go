// Package storage mirrors uploaded files into S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/upload"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// Mirror copies an uploaded file somewhere durable and returns its key
type Mirror interface {
	Mirror(ctx context.Context, kind upload.Kind, f upload.File, contentType string) (string, error)
}

// ObjectKey returns the object key of a new upload:
// images/<uuid><ext> or cv/CV_<uuid><ext>.
func ObjectKey(kind upload.Kind, ext string) string {
	ext = strings.ToLower(ext)
	if kind == upload.KindCV {
		return "cv/CV_" + uuid.NewString() + ext
	}
	return "images/" + uuid.NewString() + ext
}

// S3Mirror writes uploads to an S3 bucket (AWS S3, MinIO, RustFS, ...)
type S3Mirror struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3MirrorOption configures an S3Mirror
type S3MirrorOption func(*S3Mirror)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3MirrorOption {
	return func(m *S3Mirror) {
		m.logger = logger
	}
}

// NewS3Mirror creates a mirror from configuration
func NewS3Mirror(cfg *config.S3Config, opts ...S3MirrorOption) (*S3Mirror, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	m := &S3Mirror{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Mirror uploads f under a fresh key. The body is rewound first.
func (m *S3Mirror) Mirror(ctx context.Context, kind upload.Kind, f upload.File, contentType string) (string, error) {
	if f.Body == nil {
		return "", errors.New("file body is required")
	}
	if _, err := f.Body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", f.Name, err)
	}

	key := ObjectKey(kind, f.Ext())
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          f.Body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(f.Size),
		Metadata:      map[string]string{"original-name": f.Name},
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	m.logger.Info("Upload mirrored",
		zap.String("bucket", m.bucket),
		zap.String("key", key),
		zap.Int64("size", f.Size))
	return key, nil
}

// NopMirror is used when no object storage is configured
type NopMirror struct{}

// Mirror does nothing and returns an empty key
func (NopMirror) Mirror(context.Context, upload.Kind, upload.File, string) (string, error) {
	return "", nil
}

// New returns the mirror selected by cfg
func New(cfg config.S3Config, logger *zap.Logger) (Mirror, error) {
	if !cfg.Enabled {
		return NopMirror{}, nil
	}
	return NewS3Mirror(&cfg, WithLogger(logger))
}

var (
	_ Mirror = (*S3Mirror)(nil)
	_ Mirror = NopMirror{}
)
