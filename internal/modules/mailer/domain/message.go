package domain

import (
	"context"
	"errors"
)

var (
	ErrSendFailed  = errors.New("mail send failed")
	ErrNoRecipient = errors.New("mail recipient is required")
)

// Message is a single-recipient HTML email
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// Validate checks the fields every backend needs
func (m Message) Validate() error {
	if m.To == "" {
		return ErrNoRecipient
	}
	return nil
}

// Mailer sends a single email
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
