package email

import (
	"context"
	"fmt"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/Badsnus/qr-studio/pkg/smtp"
)

type mailer interface {
	Recipients() int
	Send(mail smtp.Mail) error
}

// Sharer shares QR codes by mail to the configured recipients.
type Sharer struct {
	mailer mailer
	logger *types.Logger
}

func NewSharer(mailer mailer, logger *types.Logger) *Sharer {
	return &Sharer{
		mailer: mailer,
		logger: logger,
	}
}

func (s *Sharer) Available() bool {
	return s.mailer != nil && s.mailer.Recipients() > 0
}

func (s *Sharer) CanShareFiles() bool {
	return true
}

// Share sends the payload. A context cancelled before sending counts as a
// cancelled share.
func (s *Sharer) Share(ctx context.Context, payload entity.SharePayload) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", errorz.ErrShareCancelled, err)
	}

	mail := smtp.Mail{
		Subject: payload.Title,
		Body:    payload.Text,
	}
	for _, f := range payload.Files {
		mail.Attachments = append(mail.Attachments, smtp.Attachment{Name: f.Name, MIME: f.MIME, Data: f.Data})
	}

	if err := s.mailer.Send(mail); err != nil {
		return err
	}
	s.logger.Infof("shared %q by mail to %d recipient(s)", payload.Title, s.mailer.Recipients())
	return nil
}
