// Package bootstrap builds the modules from configuration for the CLI,
// the local server and the Lambda entry points.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saransh1220/bucket-events/internal/gateway"
	"github.com/saransh1220/bucket-events/internal/gateway/middleware"
	"github.com/saransh1220/bucket-events/internal/modules/digest"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage"
	"github.com/saransh1220/bucket-events/internal/modules/mailer"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/infrastructure/resize"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

// App holds every module the server exposes
type App struct {
	Config    config.Config
	Digest    *digest.Module
	Thumbnail *thumbnail.Module
}

// New builds both handlers over one storage backend
func New(ctx context.Context, cfg config.Config) (*App, error) {
	files, err := filestorage.NewModule(ctx, cfg.FileStorage, cfg.Digest.PageSize)
	if err != nil {
		return nil, err
	}
	digestModule, err := newDigest(ctx, cfg, files)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Digest:    digestModule,
		Thumbnail: newThumbnail(cfg, files),
	}, nil
}

// NewDigest builds only the digest module
func NewDigest(ctx context.Context, cfg config.Config) (*digest.Module, error) {
	files, err := filestorage.NewModule(ctx, cfg.FileStorage, cfg.Digest.PageSize)
	if err != nil {
		return nil, err
	}
	return newDigest(ctx, cfg, files)
}

// NewThumbnail builds only the thumbnail module
func NewThumbnail(ctx context.Context, cfg config.Config) (*thumbnail.Module, error) {
	files, err := filestorage.NewModule(ctx, cfg.FileStorage, cfg.Digest.PageSize)
	if err != nil {
		return nil, err
	}
	return newThumbnail(cfg, files), nil
}

// Handler returns the routed HTTP handler for the local server
func (a *App) Handler() http.Handler {
	return gateway.SetupRoutes(gateway.RouterConfig{
		DigestHandler:    a.Digest.HTTPHandler(),
		ThumbnailHandler: a.Thumbnail.HTTPHandler(),
		InvokeAuth:       middleware.NewInvokeAuth(a.Config.Server.JWTSecret),
	})
}

func newDigest(ctx context.Context, cfg config.Config, files *filestorage.Module) (*digest.Module, error) {
	if cfg.Digest.Bucket == "" {
		return nil, fmt.Errorf("DIGEST_BUCKET is required")
	}
	mail, err := mailer.NewModule(ctx, cfg.Mail)
	if err != nil {
		return nil, err
	}
	return digest.NewModule(files.Service(), mail.Mailer(), cfg.Digest, cfg.Mail), nil
}

func newThumbnail(cfg config.Config, files *filestorage.Module) *thumbnail.Module {
	return thumbnail.NewModule(files.Service(), resize.NewImagingResizer(), cfg.Thumbnail)
}
