package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dmitrijs2005/fileshare/internal/server/config"
)

// SMTPSender delivers mail through an authenticated SMTP relay, sending from
// the login account.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
}

func NewSMTPSender(c *config.Config) *SMTPSender {
	return &SMTPSender{host: c.SMTPHost, port: c.SMTPPort, user: c.EmailUser, pass: c.EmailPass}
}

func (s *SMTPSender) message(to, subject, htmlBody string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.user); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)
	return m, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	m, err := s.message(to, subject, htmlBody)
	if err != nil {
		return err
	}

	c, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.pass),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
