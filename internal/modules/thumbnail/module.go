package thumbnail

import (
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/application"
	thumbHttp "github.com/saransh1220/bucket-events/internal/modules/thumbnail/interfaces/http"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

// Module represents the Thumbnail module
type Module struct {
	service *application.ThumbnailService
	handler *thumbHttp.ThumbnailHandler
}

// NewModule creates and initializes the Thumbnail module
func NewModule(store application.ObjectStore, resizer application.Resizer, cfg config.ThumbnailConfig) *Module {
	service := application.NewThumbnailService(store, resizer, application.Options{
		Namespace: cfg.Prefix,
		Width:     cfg.Width,
		Height:    cfg.Height,
	})

	return &Module{
		service: service,
		handler: thumbHttp.NewThumbnailHandler(service),
	}
}

// Service returns the thumbnail service
func (m *Module) Service() *application.ThumbnailService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *thumbHttp.ThumbnailHandler {
	return m.handler
}
