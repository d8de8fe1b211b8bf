// Package objectstore hands out presigned upload URLs for product images on
// S3-compatible storage (AWS S3, MinIO, LocalStack).
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// ErrPresignFailed wraps any failure of the S3 presign client.
var ErrPresignFailed = errors.New("failed to presign image upload")

const defaultPresignTTL = 15 * time.Minute

// Presigner issues upload URLs for new product images.
type Presigner interface {
	PresignImageUpload(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error)
}

// putObjectPresigner is the subset of *s3.PresignClient in use.
type putObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// loadAWSConfig is swapped in tests.
var loadAWSConfig = awsconfig.LoadDefaultConfig

type s3Presigner struct {
	client        putObjectPresigner
	bucket        string
	publicBaseURL string
	ttl           time.Duration
	now           func() time.Time
	newKey        func() string
}

// NewS3Presigner builds a presigner for cfg. Static credentials are used when
// an access key is configured, otherwise the default AWS credential chain
// applies. A custom endpoint switches to path-style addressing.
func NewS3Presigner(ctx context.Context, cfg config.Images, log *logger.Logger) (Presigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3Presigner").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("func", "NewS3Presigner").Str("bucket", cfg.Bucket).Msg("image uploads enabled")
	return newS3Presigner(s3.NewPresignClient(client), cfg), nil
}

func newS3Presigner(client putObjectPresigner, cfg config.Images) *s3Presigner {
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	return &s3Presigner{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL(cfg),
		ttl:           ttl,
		now:           time.Now,
		newKey:        uuid.NewString,
	}
}

// publicBaseURL is where uploaded objects can be fetched without signing.
func publicBaseURL(cfg config.Images) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// PresignImageUpload returns a PUT URL for a fresh object key under
// products/yyyy/mm/dd/. The content type is part of the signature, so the
// client must send the same Content-Type header.
func (p *s3Presigner) PresignImageUpload(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error) {
	log := logger.FromContext(ctx)

	now := p.now().UTC()
	key := fmt.Sprintf("products/%04d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), p.newKey(), strings.ToLower(path.Ext(req.Filename)))

	presigned, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		log.Err(err).Str("func", "*s3Presigner.PresignImageUpload").Str("key", key).Msg("error presigning upload")
		return models.ImageUpload{}, fmt.Errorf("%w: %w", ErrPresignFailed, err)
	}

	return models.ImageUpload{
		Key:       key,
		UploadURL: presigned.URL,
		PublicURL: p.publicBaseURL + "/" + key,
		ExpiresAt: now.Add(p.ttl),
	}, nil
}
