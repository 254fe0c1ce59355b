package filestorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LucasBeserra/magnetic-report-api/internal/config"
	"github.com/LucasBeserra/magnetic-report-api/pkg/report"
	"go.uber.org/zap"
)

// Storage keeps uploaded photo files. Storage paths returned by Save are what
// gets persisted on the photo record and what Open and Delete accept.
type Storage interface {
	report.PhotoSource

	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// Delete treats an absent file as already removed.
	Delete(ctx context.Context, storagePath string) error
	URL(ctx context.Context, storagePath string) (string, error)
}

func NewStorage(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Storage, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "", "local":
		logger.Infof("Storing uploads on disk under %s", cfg.Storage.UploadDir)
		return NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.PublicPrefix)
	case "minio":
		client, err := NewMinioClient(&cfg.Minio)
		if err != nil {
			return nil, err
		}
		logger.Infof("Storing uploads in minio bucket %s", cfg.Minio.BUCKET)
		return NewMinioStorage(ctx, client, cfg.Minio.BUCKET)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
