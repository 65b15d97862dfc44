package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"tierboard/pkg/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Principal": {"AWS": "*"},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}
	]
}`

// MinioStore keeps the avatars on a MinIO bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to MinIO and makes sure the avatar bucket exists and is publicly readable.
func NewMinioStore(ctx context.Context, cfg config.BucketConfiguration) (*MinioStore, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.AccessSecret, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	store := &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}

	if err := store.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return store, nil
}

// ensureBucket creates the bucket if it doesn't exist.
func (s *MinioStore) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("error creating bucket %s: %w", s.bucket, err)
		}
		zap.L().Info("created avatar bucket", zap.String("bucket", s.bucket))
	}

	// Clients load the avatars straight from the bucket.
	if err := s.client.SetBucketPolicy(ctx, s.bucket, fmt.Sprintf(publicReadPolicy, s.bucket)); err != nil {
		zap.L().Warn("couldn't set the public read policy", zap.String("bucket", s.bucket), zap.Error(err))
	}

	return nil
}

// Save uploads the avatar and returns its public URL.
func (s *MinioStore) Save(ctx context.Context, filename string, contentType string, body io.Reader, size int64) (string, error) {
	key := NewObjectKey(filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to MinIO: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes the object behind the URL. MinIO doesn't fail on missing keys.
func (s *MinioStore) Delete(ctx context.Context, path string) error {
	key := objectKeyFromPath(s.publicURL, path)
	if key == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s from MinIO: %w", key, err)
	}
	return nil
}
