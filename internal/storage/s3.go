package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
)

const picturePrefix = "profile_pics"

// S3Storage persists uploaded profile pictures in an S3 bucket.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// New builds an S3 client for the configured endpoint. A non-empty endpoint
// switches to path-style addressing so the client also works against MinIO.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, bucket: bucket}, nil
}

// Upload stores the picture bytes under a fresh key and returns it.
func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", picturePrefix, uuid.New(), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Log.Errorw("failed to put object", "bucket", s.bucket, "key", key, "err", err)
		return "", err
	}

	logger.Log.Infow("profile picture stored", "bucket", s.bucket, "key", key, "size", len(data))
	return key, nil
}

// Get fetches stored picture bytes and their content type.
func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", err
	}

	return data, aws.ToString(out.ContentType), nil
}

// Placeholder returns the key of the stock picture assigned when
// registration had no upload.
func (s *S3Storage) Placeholder() string {
	return models.DefaultProfilePicture
}
