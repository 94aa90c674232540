package mailer

import (
	"context"
	"fmt"

	"github.com/saransh1220/bucket-events/internal/modules/mailer/domain"
	"github.com/saransh1220/bucket-events/internal/modules/mailer/infrastructure/outbox"
	"github.com/saransh1220/bucket-events/internal/modules/mailer/infrastructure/ses"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

// Module represents the Mailer module
type Module struct {
	mailer domain.Mailer
}

// NewModule creates the mailer selected by cfg.Backend
func NewModule(ctx context.Context, cfg config.MailConfig) (*Module, error) {
	var mailer domain.Mailer
	var err error

	switch cfg.Backend {
	case config.MailSES, "":
		mailer, err = ses.NewSESMailer(ctx, ses.SESConfig{Region: cfg.Region, Endpoint: cfg.Endpoint})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES mailer: %w", err)
		}
	case config.MailOutbox:
		mailer, err = outbox.NewOutbox(cfg.OutboxPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize outbox mailer: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown mail backend %q", cfg.Backend)
	}

	return &Module{mailer: mailer}, nil
}

// Mailer returns the configured mail sender
func (m *Module) Mailer() domain.Mailer {
	return m.mailer
}
