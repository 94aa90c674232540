package outbox

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/bucket-events/internal/modules/mailer/domain"
)

// Outbox implements Mailer by writing each message as an HTML file.
// Used for local runs where no mail service is reachable.
type Outbox struct {
	dir string
	now func() time.Time
}

// NewOutbox creates the outbox directory if needed
func NewOutbox(dir string) (*Outbox, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create outbox directory: %w", err)
	}
	return &Outbox{dir: dir, now: time.Now}, nil
}

// Send writes msg to <dir>/<timestamp>-<id>.html
func (o *Outbox) Send(ctx context.Context, msg domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	name := fmt.Sprintf("%s-%s.html", o.now().UTC().Format("20060102T150405"), uuid.NewString())
	path := filepath.Join(o.dir, name)

	content := fmt.Sprintf("<!--\nFrom: %s\nTo: %s\nSubject: %s\n-->\n%s", msg.From, msg.To, msg.Subject, msg.HTMLBody)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: outbox: %w", domain.ErrSendFailed, err)
	}

	log.Printf("[Outbox.Send] wrote %q for %s to %s", msg.Subject, msg.To, path)
	return nil
}
