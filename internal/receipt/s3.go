package receipt

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config locates the receipts bucket. Endpoint is set for S3-compatible
// services (MinIO, R2), which also switches to path-style addressing.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL, when set, prefixes object keys instead of the upload location.
	PublicBaseURL string
}

// ObjectUploader is the part of *manager.Uploader the store uses.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store puts receipts into an S3 bucket under receipts/YYYY/MM/.
type S3Store struct {
	uploader      ObjectUploader
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

// NewS3Store constructs an S3Store over uploader.
func NewS3Store(uploader ObjectUploader, bucket, publicBaseURL string) *S3Store {
	return &S3Store{
		uploader:      uploader,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// NewS3Uploader builds a multipart-capable uploader from cfg. Static keys are
// used when given; otherwise the default AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*manager.Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("receipt.NewS3Uploader: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return manager.NewUploader(client), nil
}

func (s *S3Store) Put(ctx context.Context, r Receipt) (string, error) {
	key := fmt.Sprintf("receipts/%s/%s%s", s.now().UTC().Format("2006/01"), uuid.NewString(), r.Extension)

	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(r.Data),
		ContentType:        aws.String(r.ContentType),
		ContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", r.Filename)),
	})
	if err != nil {
		return "", fmt.Errorf("receipt.S3Store.Put: %w", err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return out.Location, nil
}
