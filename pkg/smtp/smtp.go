package smtp

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("no recipients")

// Attachment is an in-memory file attached to a mail.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

// Mail is a single outgoing message.
type Mail struct {
	Subject     string
	Body        string
	Attachments []Attachment
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends mails from one address to a fixed list of recipients.
type Client struct {
	dialer dialer
	from   string
	to     []string
	domain string
	now    func() time.Time
}

// NewClient initializes Client. domain is used for Message-ID headers.
func NewClient(dialer dialer, from string, to []string, domain string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
		to:     to,
		domain: domain,
		now:    time.Now,
	}
}

// Recipients returns the number of configured recipients.
func (c *Client) Recipients() int {
	return len(c.to)
}

// Send delivers the mail to every configured recipient in one message.
func (c *Client) Send(mail Mail) error {
	if len(c.to) == 0 {
		return ErrNoRecipients
	}

	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", c.now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", c.to...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Body)

	for _, a := range mail.Attachments {
		data := a.Data
		msg.Attach(a.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.MIME}}),
		)
	}

	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
