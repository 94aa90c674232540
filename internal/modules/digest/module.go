package digest

import (
	"github.com/saransh1220/bucket-events/internal/modules/digest/application"
	digestHttp "github.com/saransh1220/bucket-events/internal/modules/digest/interfaces/http"
	maildomain "github.com/saransh1220/bucket-events/internal/modules/mailer/domain"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

// Module represents the Digest module
type Module struct {
	service *application.DigestService
	handler *digestHttp.DigestHandler
}

// NewModule creates and initializes the Digest module
func NewModule(files application.FileService, mailer maildomain.Mailer, cfg config.DigestConfig, mail config.MailConfig) *Module {
	service := application.NewDigestService(files, mailer, application.Options{
		Bucket:   cfg.Bucket,
		Prefix:   cfg.Prefix,
		From:     mail.From,
		To:       mail.To,
		Location: cfg.Location,
	})

	return &Module{
		service: service,
		handler: digestHttp.NewDigestHandler(service),
	}
}

// Service returns the digest service
func (m *Module) Service() *application.DigestService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *digestHttp.DigestHandler {
	return m.handler
}
