package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStager stages uploads as objects and reads them back with ranged GETs
type MinioStager struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func NewMinioStager(ctx context.Context, cfg MinioConfig, logger *slog.Logger) (*MinioStager, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioStager{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *MinioStager) Stage(ctx context.Context, name string, r io.Reader, size int64) (*StagedFile, error) {
	key := path.Join("staging", uuid.NewString()+".pdf")

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.removeObject(key)
		return nil, fmt.Errorf("failed to open staged upload: %w", err)
	}

	cleanup := func() error {
		return errors.Join(obj.Close(), s.removeObject(key))
	}
	return newStagedFile(name, info.Size, obj, cleanup), nil
}

// removeObject runs detached from the request so cleanup survives cancellation
func (s *MinioStager) removeObject(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Warn("Failed to remove staged upload", "bucket", s.bucket, "key", key, "error", err)
		return err
	}
	return nil
}
