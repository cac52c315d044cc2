package imagestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/trailhead-dev/trailhead/internal/config"
)

// S3Store stores images in an S3-compatible bucket (MinIO in development).
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
	logger    *slog.Logger
}

// NewS3Store builds the client, verifies the bucket exists and creates it
// when it does not.
func NewS3Store(ctx context.Context, cfg *appconfig.Config, logger *slog.Logger) (*S3Store, error) {
	scheme := "http"
	if cfg.S3UseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, cfg.S3Endpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	})

	store := &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    cfg.S3Bucket,
		publicURL: fmt.Sprintf("%s/%s", endpointURL, cfg.S3Bucket),
		logger:    logger,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.HeadBucket(headCtx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	s.logger.Info("bucket not found, creating", "bucket", s.bucket)

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", s.bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket %q: %w", s.bucket, err)
	}

	return nil
}

func (s *S3Store) Upload(ctx context.Context, filename string, content io.Reader, contentType string) (Image, error) {
	objectKey := fmt.Sprintf("%s-%s", uuid.NewString(), filename)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Image{}, fmt.Errorf("failed to upload %q to bucket %q: %w", objectKey, s.bucket, err)
	}

	return Image{
		URL:      fmt.Sprintf("%s/%s", s.publicURL, objectKey),
		Filename: objectKey,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, filename string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q from bucket %q: %w", filename, s.bucket, err)
	}

	return nil
}
