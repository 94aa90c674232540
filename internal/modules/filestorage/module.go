package filestorage

import (
	"context"
	"fmt"

	"github.com/saransh1220/bucket-events/internal/modules/filestorage/application"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/infrastructure/local"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/infrastructure/minio"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/infrastructure/s3"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

// Module represents the FileStorage module
type Module struct {
	service *application.FileService
	storage domain.ObjectStorage
}

// NewModule creates and initializes the FileStorage module
func NewModule(ctx context.Context, cfg config.FileStorageConfig, pageSize int32) (*Module, error) {
	var storage domain.ObjectStorage
	var err error

	switch cfg.Backend {
	case config.BackendS3, "":
		storage, err = s3.NewS3Storage(ctx, s3.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	case config.BackendMinIO:
		storage, err = minio.NewMinIOStorage(minio.MinIOConfig{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MinIO storage: %w", err)
		}
	case config.BackendLocal:
		storage, err = local.NewLocalStorage(cfg.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	return &Module{
		service: application.NewFileService(storage, pageSize),
		storage: storage,
	}, nil
}

// Service returns the file service for use by other modules
func (m *Module) Service() *application.FileService {
	return m.service
}

// Storage returns the underlying backend
func (m *Module) Storage() domain.ObjectStorage {
	return m.storage
}
