package filestorage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignedURLExpiry = 60 * time.Minute

func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(ctx context.Context, client *minio.Client, bucket string) (*MinioStorage, error) {
	if err := createBucketIfNotExists(ctx, client, bucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &MinioStorage{client: client, bucket: bucket}, nil
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	}

	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func (ms *MinioStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := ms.client.PutObject(ctx, ms.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return info.Key, nil
}

func (ms *MinioStorage) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	object, err := ms.client.GetObject(ctx, ms.bucket, storagePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy, Stat surfaces a missing key
	if _, err := object.Stat(); err != nil {
		object.Close()
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %s", report.ErrPhotoNotFound, storagePath)
		}
		return nil, err
	}

	return object, nil
}

func (ms *MinioStorage) Delete(ctx context.Context, storagePath string) error {
	// RemoveObject succeeds for keys that do not exist
	if err := ms.client.RemoveObject(ctx, ms.bucket, storagePath, minio.RemoveObjectOptions{}); err != nil && !isNoSuchKey(err) {
		return err
	}
	return nil
}

func (ms *MinioStorage) URL(ctx context.Context, storagePath string) (string, error) {
	u, err := ms.client.PresignedGetObject(ctx, ms.bucket, storagePath, presignedURLExpiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
