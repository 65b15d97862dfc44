package storage

import (
	"context"
	"fmt"
	"io"
	"tierboard/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3ObjectClient is the part of the s3 client the store uses.
type S3ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps the avatars on a S3 compatible bucket.
type S3Store struct {
	client    S3ObjectClient
	bucket    string
	publicURL string
}

// NewS3Store creates the s3 client from the bucket configuration.
func NewS3Store(cfg config.BucketConfiguration) *S3Store {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.AccessSecret,
				"",
			),
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return newS3Store(client, cfg.Bucket, cfg.PublicURL)
}

func newS3Store(client S3ObjectClient, bucket string, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}
}

// Save uploads the avatar with a public read ACL and returns its public URL.
func (s *S3Store) Save(ctx context.Context, filename string, contentType string, body io.Reader, size int64) (string, error) {
	key := NewObjectKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          io.LimitReader(body, size),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3 bucket: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes the object behind the URL. S3 doesn't fail on missing keys.
func (s *S3Store) Delete(ctx context.Context, path string) error {
	key := objectKeyFromPath(s.publicURL, path)
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from S3 bucket: %w", key, err)
	}
	return nil
}
